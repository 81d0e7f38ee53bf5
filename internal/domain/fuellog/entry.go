package fuellog

import (
	"math"
	"time"

	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentStatus classifies how much of a fuel log's cost has been settled
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// Entry is a single fueling event for a vehicle. Monetary fields are stored
// in minor units; volumes in liters and odometer readings in kilometers.
//
// DistanceTraveled, FuelEfficiency, TotalCost, RemainingAmount and
// PaymentStatus are derived: they are recomputed from the raw fields by
// Recompute on every write and must never be set directly by callers.
type Entry struct {
	ID           uuid.UUID `json:"id" bson:"_id"`
	VehicleID    string    `json:"vehicle_id" bson:"vehicle_id"`
	Date         time.Time `json:"date" bson:"date"`
	EmployeeID   string    `json:"employee_id,omitempty" bson:"employee_id,omitempty"`
	EmployeeName string    `json:"employee_name,omitempty" bson:"employee_name,omitempty"`

	FuelAmount float64 `json:"fuel_amount" bson:"fuel_amount"` // liters
	FuelPrice  int64   `json:"fuel_price" bson:"fuel_price"`   // minor units per liter
	StartKm    float64 `json:"start_km,omitempty" bson:"start_km,omitempty"`
	EndKm      float64 `json:"end_km,omitempty" bson:"end_km,omitempty"`

	PaidAmount        int64 `json:"paid_amount" bson:"paid_amount"`
	OverallPaidAmount int64 `json:"overall_paid_amount" bson:"overall_paid_amount"`

	// Derived fields
	DistanceTraveled float64       `json:"distance_traveled" bson:"distance_traveled"`
	FuelEfficiency   float64       `json:"fuel_efficiency" bson:"fuel_efficiency"` // km per liter
	TotalCost        int64         `json:"total_cost" bson:"total_cost"`
	RemainingAmount  int64         `json:"remaining_amount" bson:"remaining_amount"`
	PaymentStatus    PaymentStatus `json:"payment_status" bson:"payment_status"`

	Status    shared.RecordStatus `json:"status" bson:"status"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`
}

// NewEntry creates a fuel log entry with derived fields computed
func NewEntry(vehicleID string, date time.Time) *Entry {
	now := time.Now()
	e := &Entry{
		ID:        uuid.New(),
		VehicleID: vehicleID,
		Date:      date,
		Status:    shared.RecordStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.Recompute()
	return e
}

// Recompute derives distance, efficiency, cost, remaining balance and payment
// status from the raw fields. It is pure arithmetic, deterministic for the
// same inputs, and never fails; the write path calls it before every persist.
func (e *Entry) Recompute() {
	// Distance only when both odometer readings are present and positive.
	// Otherwise the prior value (zero on creation) is retained.
	if e.StartKm > 0 && e.EndKm > 0 {
		e.DistanceTraveled = e.EndKm - e.StartKm
	}

	if e.FuelAmount > 0 && e.DistanceTraveled > 0 {
		e.FuelEfficiency = e.DistanceTraveled / e.FuelAmount
	}

	if e.FuelAmount > 0 && e.FuelPrice > 0 {
		e.TotalCost = int64(math.Round(e.FuelAmount * float64(e.FuelPrice)))
	}

	totalPaid := e.PaidAmount + e.OverallPaidAmount
	e.RemainingAmount = e.TotalCost - totalPaid
	e.PaymentStatus = classifyPayment(e.RemainingAmount, totalPaid)

	e.UpdatedAt = time.Now()
}

// classifyPayment maps a remaining balance and total paid onto a payment
// status. Exact zero remaining counts as paid; overpayment also collapses
// to paid rather than surfacing a refund.
func classifyPayment(remaining, totalPaid int64) PaymentStatus {
	switch {
	case remaining <= 0:
		return PaymentStatusPaid
	case totalPaid > 0:
		return PaymentStatusPartial
	default:
		return PaymentStatusPending
	}
}

// ApplySettlement credits an overall payment against this entry and
// recomputes the derived fields.
func (e *Entry) ApplySettlement(amount int64) {
	e.OverallPaidAmount += amount
	e.Recompute()
}
