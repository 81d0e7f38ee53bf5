package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/akrgroup/backoffice/internal/domain/fuellog"
	"github.com/akrgroup/backoffice/internal/domain/shared"
)

func TestFuelLogService_CreateEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("DerivedFieldsComputed", func(t *testing.T) {
		fuelLogRepo := new(MockFuelLogRepository)
		svc := NewFuelLogService(newTestLogger(), fuelLogRepo)

		fuelLogRepo.On("Create", ctx, mock.Anything).Return(nil)

		e, err := svc.CreateEntry(ctx, FuelLogInput{
			VehicleID:  "LL-4521",
			Date:       time.Now(),
			FuelAmount: 40,
			FuelPrice:  750,
			StartKm:    12000,
			EndKm:      12400,
			PaidAmount: 10000,
		})

		assert.NoError(t, err)
		assert.Equal(t, float64(400), e.DistanceTraveled)
		assert.Equal(t, float64(10), e.FuelEfficiency)
		assert.Equal(t, int64(30000), e.TotalCost)
		assert.Equal(t, int64(20000), e.RemainingAmount)
		assert.Equal(t, fuellog.PaymentStatusPartial, e.PaymentStatus)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		fuelLogRepo := new(MockFuelLogRepository)
		svc := NewFuelLogService(newTestLogger(), fuelLogRepo)

		fuelLogRepo.On("Create", ctx, mock.Anything).Return(assert.AnError)

		_, err := svc.CreateEntry(ctx, FuelLogInput{VehicleID: "LL-4521", Date: time.Now()})
		assert.Error(t, err)
	})
}

func TestFuelLogService_UpdateEntry(t *testing.T) {
	ctx := context.Background()
	fuelLogRepo := new(MockFuelLogRepository)
	svc := NewFuelLogService(newTestLogger(), fuelLogRepo)

	existing := fuellog.NewEntry("LL-4521", time.Now())
	existing.FuelAmount = 40
	existing.FuelPrice = 750
	existing.OverallPaidAmount = 30000
	existing.Recompute() // fully settled

	fuelLogRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	fuelLogRepo.On("Update", ctx, existing).Return(nil)

	// Raising the price reopens the balance but keeps prior settlements
	e, err := svc.UpdateEntry(ctx, existing.ID, FuelLogInput{
		VehicleID:  "LL-4521",
		Date:       existing.Date,
		FuelAmount: 40,
		FuelPrice:  800,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(32000), e.TotalCost)
	assert.Equal(t, int64(30000), e.OverallPaidAmount)
	assert.Equal(t, int64(2000), e.RemainingAmount)
	assert.Equal(t, fuellog.PaymentStatusPartial, e.PaymentStatus)
}

func TestFuelLogService_Deactivate(t *testing.T) {
	ctx := context.Background()
	fuelLogRepo := new(MockFuelLogRepository)
	svc := NewFuelLogService(newTestLogger(), fuelLogRepo)

	entry := fuellog.NewEntry("LL-4521", time.Now())
	fuelLogRepo.On("UpdateStatus", ctx, entry.ID, shared.RecordStatusInactive).Return(nil)

	assert.NoError(t, svc.Deactivate(ctx, entry.ID))
	fuelLogRepo.AssertExpectations(t)
}
