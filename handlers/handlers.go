package handlers

import (
	"context"

	"payroll_service/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	PayrollService *services.PayrollService
	Store          Pinger
	// StrictNotFound answers collaborator transport failures with 404
	// instead of 502.
	StrictNotFound bool
)

func InitHandlers(payroll *services.PayrollService, store Pinger, strictNotFound bool) {
	PayrollService = payroll
	Store = store
	StrictNotFound = strictNotFound
}
