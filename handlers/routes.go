package handlers

import (
	"errors"

	"payroll_service/types"
	"payroll_service/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func RegisterRoutes(app *fiber.App) {
	app.Get("/healthz", Health)

	payroll := app.Group("/api/payroll")
	payroll.Post("/generate/:employeeId", GeneratePayroll)
	payroll.Get("/employee/:employeeId", GetPayrollsForEmployee)
}

// ErrorHandler renders errors that escape handlers and middleware in the
// APIResponse envelope. Unmatched routes keep their fiber status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(types.APIResponse{
			Success: false,
			Error:   fe.Message,
		})
	}

	utils.Logger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(types.APIResponse{
		Success: false,
		Error:   types.ErrInternalError,
	})
}
