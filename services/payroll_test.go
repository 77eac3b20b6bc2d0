package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"payroll_service/models"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	employees     map[int64]models.EmployeeRef
	positions     map[int64]models.PositionRef
	employeeErr   error
	positionErr   error
	positionCalls int
}

func (f *fakeDirectory) LookupEmployee(_ context.Context, id int64) (*models.EmployeeRef, error) {
	if f.employeeErr != nil {
		return nil, f.employeeErr
	}
	e, ok := f.employees[id]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	return &e, nil
}

func (f *fakeDirectory) LookupPosition(_ context.Context, id int64) (*models.PositionRef, error) {
	f.positionCalls++
	if f.positionErr != nil {
		return nil, f.positionErr
	}
	p, ok := f.positions[id]
	if !ok {
		return nil, ErrPositionNotFound
	}
	return &p, nil
}

type memoryStore struct {
	records   []models.PayrollRecord
	createErr error
}

func (m *memoryStore) Create(_ context.Context, r *models.PayrollRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	r.ID = int64(len(m.records) + 1)
	m.records = append(m.records, *r)
	return nil
}

func (m *memoryStore) ListByEmployee(_ context.Context, employeeID int64) ([]models.PayrollRecord, error) {
	var out []models.PayrollRecord
	for _, r := range m.records {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func newTestPayroll() (*PayrollService, *fakeDirectory, *memoryStore) {
	dir := &fakeDirectory{
		employees: map[int64]models.EmployeeRef{
			1: {ID: 1, Name: "E1", PositionID: 10},
			2: {ID: 2, Name: "E2", PositionID: 20},
			3: {ID: 3, Name: "orphan", PositionID: 99},
		},
		positions: map[int64]models.PositionRef{
			10: {ID: 10, BaseSalary: 500000, ExperienceBonus: 0},
			20: {ID: 20, BaseSalary: 2500000, ExperienceBonus: 100000},
		},
	}
	store := &memoryStore{}
	svc := NewPayrollService(dir, dir, store)
	svc.Now = func() time.Time { return fixedNow }
	return svc, dir, store
}

func ptr(v float64) *float64 { return &v }

func TestGeneratePayrollScenarios(t *testing.T) {
	tests := []struct {
		name           string
		employeeID     int64
		adHoc          *float64
		wantDeductions float64
		wantTotal      float64
	}{
		{"5% bracket, no ad-hoc", 1, nil, 25000, 475000},
		{"30% bracket with ad-hoc", 2, ptr(50000), 830000, 1770000},
		{"explicit zero ad-hoc", 1, ptr(0), 25000, 475000},
		{"deductions exceed gross", 1, ptr(600000), 625000, -125000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, store := newTestPayroll()

			record, err := svc.GeneratePayroll(context.Background(), tt.employeeID, tt.adHoc)
			require.NoError(t, err)

			assert.Equal(t, tt.employeeID, record.EmployeeID)
			assert.Equal(t, tt.wantDeductions, record.Deductions)
			assert.Equal(t, tt.wantTotal, record.TotalPay)
			assert.Equal(t, fixedNow, record.PayDate)
			assert.NotZero(t, record.ID)
			require.Len(t, store.records, 1)
			assert.Equal(t, *record, store.records[0])
		})
	}
}

func TestGeneratePayrollEmployeeNotFound(t *testing.T) {
	svc, dir, store := newTestPayroll()

	_, err := svc.GeneratePayroll(context.Background(), 404, nil)

	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, dir.positionCalls)
	assert.Empty(t, store.records)
}

func TestGeneratePayrollPositionNotFound(t *testing.T) {
	svc, _, store := newTestPayroll()

	_, err := svc.GeneratePayroll(context.Background(), 3, nil)

	assert.ErrorIs(t, err, ErrPositionNotFound)
	assert.Empty(t, store.records)
}

func TestGeneratePayrollTransportFailure(t *testing.T) {
	svc, dir, store := newTestPayroll()
	dir.positionErr = &LookupError{Collaborator: "department-service", ID: 10, Err: errors.New("connection refused")}

	_, err := svc.GeneratePayroll(context.Background(), 1, nil)

	assert.True(t, IsTransportFailure(err))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Empty(t, store.records)
}

func TestGeneratePayrollRejectsNegativeDeductions(t *testing.T) {
	svc, dir, store := newTestPayroll()
	dir.employeeErr = errors.New("must not be called")

	_, err := svc.GeneratePayroll(context.Background(), 1, ptr(-1))

	assert.ErrorIs(t, err, ErrInvalidDeductions)
	assert.Empty(t, store.records)
}

func TestGeneratePayrollStoreFailure(t *testing.T) {
	svc, _, store := newTestPayroll()
	store.createErr = errors.New("disk full")

	record, err := svc.GeneratePayroll(context.Background(), 1, nil)

	assert.Nil(t, record)
	assert.EqualError(t, err, "disk full")
}

func TestGeneratePayrollIsNotIdempotent(t *testing.T) {
	svc, _, store := newTestPayroll()
	ctx := context.Background()

	a, err := svc.GeneratePayroll(ctx, 1, nil)
	require.NoError(t, err)
	b, err := svc.GeneratePayroll(ctx, 1, nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, store.records, 2)
}

func TestListPayrollsForEmployee(t *testing.T) {
	svc, _, _ := newTestPayroll()
	ctx := context.Background()

	records, err := svc.ListPayrollsForEmployee(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	_, err = svc.GeneratePayroll(ctx, 1, nil)
	require.NoError(t, err)
	_, err = svc.GeneratePayroll(ctx, 2, nil)
	require.NoError(t, err)

	records, err = svc.ListPayrollsForEmployee(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].EmployeeID)
}

func TestGeneratePayrollTotalPayInvariant(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("total pay is gross minus deductions", prop.ForAll(
		func(base, bonus, adHoc float64) bool {
			dir := &fakeDirectory{
				employees: map[int64]models.EmployeeRef{1: {ID: 1, PositionID: 1}},
				positions: map[int64]models.PositionRef{1: {ID: 1, BaseSalary: base, ExperienceBonus: bonus}},
			}
			svc := NewPayrollService(dir, dir, &memoryStore{})

			r, err := svc.GeneratePayroll(context.Background(), 1, &adHoc)
			if err != nil {
				return false
			}
			tax := DefaultTaxPolicy().Deduct(base + bonus)
			return r.TotalPay == r.BaseSalary+r.ExperienceBonus-r.Deductions &&
				r.Deductions == adHoc+tax
		},
		gen.Float64Range(0, 3000000),
		gen.Float64Range(0, 500000),
		gen.Float64Range(0, 200000),
	))

	properties.TestingRun(t)
}
