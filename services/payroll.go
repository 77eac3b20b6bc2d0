package services

import (
	"context"
	"fmt"
	"time"

	"payroll_service/models"
	"payroll_service/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const tracerName = "payroll_service/services"

// PayrollService generates payroll records from the employee's current
// position and the tax table.
type PayrollService struct {
	Employees EmployeeLookup
	Positions PositionLookup
	Store     PayrollStore
	Tax       TaxPolicy
	Now       func() time.Time
}

func NewPayrollService(employees EmployeeLookup, positions PositionLookup, store PayrollStore) *PayrollService {
	return &PayrollService{
		Employees: employees,
		Positions: positions,
		Store:     store,
		Tax:       DefaultTaxPolicy(),
		Now:       time.Now,
	}
}

// GeneratePayroll computes and stores a payroll record for employeeID.
// adHocDeductions may be nil, meaning zero. Nothing is written unless both
// the employee and its position resolve. Repeated calls create new records.
func (s *PayrollService) GeneratePayroll(ctx context.Context, employeeID int64, adHocDeductions *float64) (*models.PayrollRecord, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "payroll.generate")
	defer span.End()
	span.SetAttributes(attribute.Int64("employee.id", employeeID))

	adHoc := 0.0
	if adHocDeductions != nil {
		adHoc = *adHocDeductions
	}
	if adHoc < 0 {
		return nil, ErrInvalidDeductions
	}

	employee, err := s.Employees.LookupEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("generate payroll for employee %d: %w", employeeID, err)
	}

	position, err := s.Positions.LookupPosition(ctx, employee.PositionID)
	if err != nil {
		return nil, fmt.Errorf("generate payroll for employee %d: %w", employeeID, err)
	}

	grossPay := position.GrossPay()
	tax := s.Tax.Deduct(grossPay)
	totalDeductions := adHoc + tax

	record := &models.PayrollRecord{
		EmployeeID:      employeeID,
		PayDate:         s.Now(),
		BaseSalary:      position.BaseSalary,
		ExperienceBonus: position.ExperienceBonus,
		Deductions:      totalDeductions,
		TotalPay:        grossPay - totalDeductions,
	}
	span.SetAttributes(
		attribute.Float64("payroll.gross", grossPay),
		attribute.Float64("payroll.tax_rate", s.Tax.Rate(grossPay)),
	)

	if err := s.Store.Create(ctx, record); err != nil {
		return nil, err
	}

	utils.Logger.Info("Payroll generated",
		zap.Int64("payroll_id", record.ID),
		zap.Int64("employee_id", employeeID),
		zap.Int64("position_id", position.ID),
		zap.Float64("gross_pay", grossPay),
		zap.Float64("tax", tax),
		zap.Float64("total_pay", record.TotalPay))

	return record, nil
}

// ListPayrollsForEmployee returns every stored record for employeeID. An
// employee with no records yields an empty slice.
func (s *PayrollService) ListPayrollsForEmployee(ctx context.Context, employeeID int64) ([]models.PayrollRecord, error) {
	records, err := s.Store.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.PayrollRecord{}
	}
	return records, nil
}
