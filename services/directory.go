package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"payroll_service/models"
	"payroll_service/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

const maxLookupBody = 1 << 20

// EmployeeLookup resolves an employee by id. A missing employee is
// reported as ErrEmployeeNotFound.
type EmployeeLookup interface {
	LookupEmployee(ctx context.Context, employeeID int64) (*models.EmployeeRef, error)
}

// PositionLookup resolves a position by id. A missing position is reported
// as ErrPositionNotFound.
type PositionLookup interface {
	LookupPosition(ctx context.Context, positionID int64) (*models.PositionRef, error)
}

// RemoteDirectory reads employees and positions from the employee and
// department services over HTTP.
type RemoteDirectory struct {
	client        *http.Client
	employeeURL   string
	departmentURL string
	timeout       time.Duration
}

func NewRemoteDirectory(employeeURL, departmentURL string, timeout time.Duration) *RemoteDirectory {
	return &RemoteDirectory{
		client:        &http.Client{},
		employeeURL:   strings.TrimRight(employeeURL, "/"),
		departmentURL: strings.TrimRight(departmentURL, "/"),
		timeout:       timeout,
	}
}

// LookupEmployee fetches an employee from the employee service.
func (d *RemoteDirectory) LookupEmployee(ctx context.Context, employeeID int64) (*models.EmployeeRef, error) {
	var employee models.EmployeeRef
	url := fmt.Sprintf("%s/api/employees/%d", d.employeeURL, employeeID)

	found, err := d.getJSON(ctx, "employee-service", employeeID, url, &employee)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrEmployeeNotFound
	}
	return &employee, nil
}

// LookupPosition fetches a position from the department service.
func (d *RemoteDirectory) LookupPosition(ctx context.Context, positionID int64) (*models.PositionRef, error) {
	var position models.PositionRef
	url := fmt.Sprintf("%s/api/positions/%d", d.departmentURL, positionID)

	found, err := d.getJSON(ctx, "department-service", positionID, url, &position)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrPositionNotFound
	}
	return &position, nil
}

// getJSON decodes the response at url into out. It returns false without an
// error when the collaborator says the entity does not exist, either with a
// 404 or with a 2xx carrying an empty or null body (204 included).
func (d *RemoteDirectory) getJSON(ctx context.Context, collaborator string, id int64, url string, out interface{}) (bool, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, collaborator+".lookup")
	defer span.End()
	span.SetAttributes(attribute.Int64("lookup.id", id))

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	fail := func(status int, err error) (bool, error) {
		lerr := &LookupError{Collaborator: collaborator, ID: id, Status: status, Err: err}
		span.RecordError(lerr)
		span.SetStatus(codes.Error, lerr.Error())
		utils.Logger.Warn("Collaborator lookup failed",
			zap.String("collaborator", collaborator),
			zap.Int64("id", id),
			zap.Error(lerr))
		return false, lerr
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fail(0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := d.client.Do(req)
	if err != nil {
		return fail(0, fmt.Errorf("failed to make request: %w", err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLookupBody))
	if err != nil {
		return fail(0, fmt.Errorf("failed to read response: %w", err))
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return false, nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fail(0, fmt.Errorf("malformed response: %w", err))
	}
	return true, nil
}
