package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payroll_service/config"
	"payroll_service/handlers"
	"payroll_service/middleware"
	"payroll_service/services"
	"payroll_service/telemetry"
	"payroll_service/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func initServices(cfg config.Config) error {
	db, err := services.OpenDatabase(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	store := services.NewGormPayrollStore(db)

	directory := services.NewRemoteDirectory(cfg.EmployeeServiceURL, cfg.DepartmentServiceURL, cfg.LookupTimeout)
	payroll := services.NewPayrollService(directory, directory, store)

	handlers.InitHandlers(payroll, store, cfg.StrictNotFound)
	return nil
}

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	cfg := config.AppConfig

	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer utils.SyncLogger()

	shutdownTracing, err := telemetry.Setup(context.Background(), "payroll-service", cfg.OTelEndpoint)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	if err := initServices(cfg); err != nil {
		utils.Logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          handlers.ErrorHandler,
	})
	app.Use(middleware.RequestID, middleware.Tracing, middleware.RequestLogger)
	handlers.RegisterRoutes(app)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		utils.Logger.Info("Shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			utils.Logger.Error("Shutdown failed", zap.Error(err))
		}
	}()

	utils.Logger.Info("Payroll service listening",
		zap.String("port", cfg.Port),
		zap.String("db_driver", cfg.DBDriver),
		zap.String("employee_service", cfg.EmployeeServiceURL),
		zap.String("department_service", cfg.DepartmentServiceURL))

	if err := app.Listen(":" + cfg.Port); err != nil {
		utils.Logger.Error("Server stopped", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		utils.Logger.Error("Failed to flush traces", zap.Error(err))
	}
}
