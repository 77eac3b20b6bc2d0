package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"payroll_service/services"
	"payroll_service/types"
	"payroll_service/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GeneratePayroll creates a payroll record for the employee in the path.
// The body is optional; when present it may carry {"deductions": <number>}.
func GeneratePayroll(c *fiber.Ctx) error {
	employeeID, err := parseEmployeeID(c)
	if err != nil {
		return validationError(c, types.ErrInvalidEmployeeID)
	}

	deductions, err := parseDeductions(c.Body())
	if err != nil {
		return validationError(c, err.Error())
	}

	record, err := PayrollService.GeneratePayroll(c.UserContext(), employeeID, deductions)
	if err != nil {
		return payrollError(c, employeeID, err)
	}

	return c.JSON(record)
}

// GetPayrollsForEmployee lists the employee's payroll records, oldest first.
func GetPayrollsForEmployee(c *fiber.Ctx) error {
	employeeID, err := parseEmployeeID(c)
	if err != nil {
		return validationError(c, types.ErrInvalidEmployeeID)
	}

	records, err := PayrollService.ListPayrollsForEmployee(c.UserContext(), employeeID)
	if err != nil {
		utils.Logger.Error("Failed to list payrolls", zap.Int64("employee_id", employeeID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
			Code:    types.CodeStoreFailure,
		})
	}

	return c.JSON(records)
}

func Health(c *fiber.Ctx) error {
	if err := Store.Ping(c.UserContext()); err != nil {
		utils.Logger.Error("Health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
			Code:    types.CodeStoreFailure,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Message: "ok",
		Data:    fiber.Map{"database": "up"},
	})
}

func parseEmployeeID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("employeeId"), 10, 64)
}

// parseDeductions reads the optional "deductions" key. An empty body, a
// body without the key, or a null value all mean no ad-hoc deductions.
func parseDeductions(body []byte) (*float64, error) {
	if len(body) == 0 {
		return nil, nil
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.New(types.ErrInvalidInput)
	}

	raw, ok := payload["deductions"]
	if !ok || string(raw) == "null" {
		return nil, nil
	}

	var deductions float64
	if err := json.Unmarshal(raw, &deductions); err != nil || deductions < 0 {
		return nil, errors.New(types.ErrInvalidDeductions)
	}
	return &deductions, nil
}

func payrollError(c *fiber.Ctx, employeeID int64, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidDeductions):
		return validationError(c, types.ErrInvalidDeductions)

	case errors.Is(err, services.ErrEmployeeNotFound):
		utils.Logger.Info("Payroll requested for unknown employee", zap.Int64("employee_id", employeeID))
		return notFound(c, types.ErrEmployeeNotFound)

	case errors.Is(err, services.ErrPositionNotFound):
		utils.Logger.Info("Payroll requested for employee without position", zap.Int64("employee_id", employeeID))
		return notFound(c, types.ErrPositionNotFound)

	case services.IsTransportFailure(err):
		utils.Logger.Error("Payroll lookup failed", zap.Int64("employee_id", employeeID), zap.Error(err))
		status := fiber.StatusBadGateway
		if StrictNotFound {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrUpstreamUnavailable,
			Code:    types.CodeUpstreamUnavailable,
		})
	}

	utils.Logger.Error("Failed to generate payroll", zap.Int64("employee_id", employeeID), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(types.APIResponse{
		Success: false,
		Error:   types.ErrDatabaseError,
		Code:    types.CodeStoreFailure,
	})
}

func validationError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.APIResponse{
		Success: false,
		Error:   msg,
		Code:    types.CodeValidationFailed,
	})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(types.APIResponse{
		Success: false,
		Error:   msg,
		Code:    types.CodeNotFound,
	})
}
