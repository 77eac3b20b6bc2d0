package services

import (
	"context"
	"fmt"
	"strings"

	"payroll_service/models"

	"go.opentelemetry.io/otel"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PayrollStore is append-only storage for payroll records.
type PayrollStore interface {
	Create(ctx context.Context, record *models.PayrollRecord) error
	ListByEmployee(ctx context.Context, employeeID int64) ([]models.PayrollRecord, error)
}

// OpenDatabase opens a gorm connection for driver ("sqlite" or "postgres")
// and creates the payrolls table if it does not exist.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.AutoMigrate(&models.PayrollRecord{}); err != nil {
		return nil, fmt.Errorf("migrate payrolls: %w", err)
	}
	return db, nil
}

type GormPayrollStore struct {
	DB *gorm.DB
}

func NewGormPayrollStore(db *gorm.DB) *GormPayrollStore {
	return &GormPayrollStore{DB: db}
}

// Create inserts record and fills in its generated ID.
func (s *GormPayrollStore) Create(ctx context.Context, record *models.PayrollRecord) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "payrolls.insert")
	defer span.End()

	if err := s.DB.WithContext(ctx).Create(record).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("insert payroll: %w", err)
	}
	return nil
}

// ListByEmployee returns the employee's records in insertion order.
func (s *GormPayrollStore) ListByEmployee(ctx context.Context, employeeID int64) ([]models.PayrollRecord, error) {
	records := []models.PayrollRecord{}
	err := s.DB.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("payroll_id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list payrolls: %w", err)
	}
	return records, nil
}

// Ping checks that the underlying database answers.
func (s *GormPayrollStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
