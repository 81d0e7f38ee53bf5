package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/akrgroup/backoffice/internal/domain/fuellog"
	"github.com/akrgroup/backoffice/internal/domain/shared"
)

// FuelLogServiceImpl implements the FuelLogService interface
type FuelLogServiceImpl struct {
	logger      *slog.Logger
	fuelLogRepo fuellog.Repository
}

// NewFuelLogService creates a new fuel log service
func NewFuelLogService(logger *slog.Logger, fuelLogRepo fuellog.Repository) FuelLogService {
	return &FuelLogServiceImpl{
		logger:      logger,
		fuelLogRepo: fuelLogRepo,
	}
}

// CreateEntry records a fueling event. Derived fields are computed before the
// write regardless of what the caller sent.
func (s *FuelLogServiceImpl) CreateEntry(ctx context.Context, input FuelLogInput) (*fuellog.Entry, error) {
	e := fuellog.NewEntry(input.VehicleID, input.Date)
	applyFuelLogInput(e, input)
	e.Recompute()

	if err := s.fuelLogRepo.Create(ctx, e); err != nil {
		s.logger.Error("Failed to create fuel log", "vehicle_id", input.VehicleID, "error", err)
		return nil, err
	}

	s.logger.Info("Fuel log created",
		"entry_id", e.ID,
		"vehicle_id", e.VehicleID,
		"total_cost", e.TotalCost,
		"payment_status", string(e.PaymentStatus),
	)
	return e, nil
}

// GetEntry retrieves a fuel log entry by ID
func (s *FuelLogServiceImpl) GetEntry(ctx context.Context, id uuid.UUID) (*fuellog.Entry, error) {
	return s.fuelLogRepo.GetByID(ctx, id)
}

// UpdateEntry replaces the raw fields of a fuel log and recomputes the
// derived ones. Settled overall payments are preserved.
func (s *FuelLogServiceImpl) UpdateEntry(ctx context.Context, id uuid.UUID, input FuelLogInput) (*fuellog.Entry, error) {
	e, err := s.fuelLogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.VehicleID = input.VehicleID
	e.Date = input.Date
	applyFuelLogInput(e, input)
	e.Recompute()

	if err := s.fuelLogRepo.Update(ctx, e); err != nil {
		s.logger.Error("Failed to update fuel log", "entry_id", id, "error", err)
		return nil, err
	}

	return e, nil
}

// ListEntries retrieves a paginated fuel log listing
func (s *FuelLogServiceImpl) ListEntries(ctx context.Context, filter fuellog.ListFilter, page, perPage int) ([]*fuellog.Entry, int64, error) {
	offset := (page - 1) * perPage

	entries, err := s.fuelLogRepo.List(ctx, filter, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.fuelLogRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// Deactivate soft-deletes a fuel log entry
func (s *FuelLogServiceImpl) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.fuelLogRepo.UpdateStatus(ctx, id, shared.RecordStatusInactive); err != nil {
		return err
	}

	s.logger.Info("Fuel log deactivated", "entry_id", id)
	return nil
}

func applyFuelLogInput(e *fuellog.Entry, input FuelLogInput) {
	e.EmployeeID = input.EmployeeID
	e.EmployeeName = input.EmployeeName
	e.FuelAmount = input.FuelAmount
	e.FuelPrice = input.FuelPrice
	e.StartKm = input.StartKm
	e.EndKm = input.EndKm
	e.PaidAmount = input.PaidAmount
}
