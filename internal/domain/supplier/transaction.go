package supplier

import (
	"time"

	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// TxType defines supplier ledger operations
type TxType string

const (
	TxTypeSupply     TxType = "SUPPLY"     // goods received, increases payable
	TxTypePayment    TxType = "PAYMENT"    // payment to supplier, decreases payable
	TxTypeAdjustment TxType = "ADJUSTMENT" // signed correction
)

// ValidTxType reports whether t is a known supplier transaction type
func ValidTxType(t TxType) bool {
	switch t {
	case TxTypeSupply, TxTypePayment, TxTypeAdjustment:
		return true
	}
	return false
}

// SignedAmount applies the supplier ledger sign convention: supply increases
// the payable balance, payment decreases it, adjustments keep their sign.
func SignedAmount(t TxType, amount int64) int64 {
	magnitude := amount
	if magnitude < 0 && t != TxTypeAdjustment {
		magnitude = -magnitude
	}
	switch t {
	case TxTypeSupply:
		return magnitude
	case TxTypePayment:
		return -magnitude
	default:
		return amount
	}
}

// Transaction is an append-only supplier ledger entry, projected to the
// document store through the outbox.
type Transaction struct {
	ID            uuid.UUID            `json:"id" bson:"_id"`
	SupplierID    uuid.UUID            `json:"supplier_id" bson:"supplier_id"`
	Type          TxType               `json:"type" bson:"type"`
	Amount        int64                `json:"amount" bson:"amount"` // signed, minor units
	FuelLogID     *uuid.UUID           `json:"fuel_log_id,omitempty" bson:"fuel_log_id,omitempty"`
	Method        shared.PaymentMethod `json:"method" bson:"method"`
	Status        shared.TxStatus      `json:"status" bson:"status"`
	Notes         string               `json:"notes,omitempty" bson:"notes,omitempty"`
	ProcessedBy   string               `json:"processed_by" bson:"processed_by"`
	BalanceAfter  int64                `json:"balance_after" bson:"balance_after"`
	CorrelationID string               `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at" bson:"updated_at"`
}

// NewTransaction builds a pending supplier ledger entry with the sign convention applied
func NewTransaction(supplierID uuid.UUID, txType TxType, amount int64, method shared.PaymentMethod, processedBy string) *Transaction {
	now := time.Now()
	return &Transaction{
		ID:          uuid.New(),
		SupplierID:  supplierID,
		Type:        txType,
		Amount:      SignedAmount(txType, amount),
		Method:      method,
		Status:      shared.TxStatusPending,
		ProcessedBy: processedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
