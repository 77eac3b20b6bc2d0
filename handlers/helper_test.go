package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"payroll_service/models"
	"payroll_service/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// fakeCollaborators serves the employee and department service endpoints.
type fakeCollaborators struct {
	mu        sync.Mutex
	employees map[int64]models.EmployeeRef
	positions map[int64]models.PositionRef
	status    int // when set, every request answers with this status
	hits      map[string]int
}

func (f *fakeCollaborators) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var kind string
	var id int64
	if _, err := fmt.Sscanf(strings.TrimPrefix(r.URL.Path, "/api/"), "employees/%d", &id); err == nil {
		kind = "employees"
	} else if _, err := fmt.Sscanf(strings.TrimPrefix(r.URL.Path, "/api/"), "positions/%d", &id); err == nil {
		kind = "positions"
	}
	f.hits[kind]++

	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}

	var body interface{}
	switch kind {
	case "employees":
		if e, ok := f.employees[id]; ok {
			body = e
		}
	case "positions":
		if p, ok := f.positions[id]; ok {
			body = p
		}
	}
	if body == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

func (f *fakeCollaborators) setStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

func SetupTest(t *testing.T) (*fiber.App, *gorm.DB, *fakeCollaborators) {
	t.Helper()

	db, err := services.OpenDatabase("sqlite", filepath.Join(t.TempDir(), "payroll.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	collaborators := &fakeCollaborators{
		employees: map[int64]models.EmployeeRef{
			1: {ID: 1, Name: "E1", Email: "e1@company.com", PositionID: 10, DepartmentID: 1},
			2: {ID: 2, Name: "E2", Email: "e2@company.com", PositionID: 20, DepartmentID: 1},
			3: {ID: 3, Name: "No Position", Email: "e3@company.com", PositionID: 99, DepartmentID: 2},
		},
		positions: map[int64]models.PositionRef{
			10: {ID: 10, Title: "Analyst", BaseSalary: 500000, ExperienceBonus: 0},
			20: {ID: 20, Title: "Director", BaseSalary: 2500000, ExperienceBonus: 100000},
		},
		hits: map[string]int{},
	}
	srv := httptest.NewServer(collaborators)
	t.Cleanup(srv.Close)

	store := services.NewGormPayrollStore(db)
	directory := services.NewRemoteDirectory(srv.URL, srv.URL, time.Second)
	InitHandlers(services.NewPayrollService(directory, directory, store), store, false)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app)
	return app, db, collaborators
}

func countPayrolls(t *testing.T, db *gorm.DB, employeeID int64) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.PayrollRecord{}).Where("employee_id = ?", employeeID).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count payrolls: %v", err)
	}
	return n
}
