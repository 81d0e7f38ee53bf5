package wallet

import (
	"time"

	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// TxType defines shed wallet ledger operations
type TxType string

const (
	TxTypeFuelPurchase    TxType = "FUEL_PURCHASE"
	TxTypePaymentSent     TxType = "PAYMENT_SENT"
	TxTypePaymentReceived TxType = "PAYMENT_RECEIVED"
	TxTypeAdjustment      TxType = "ADJUSTMENT"
	TxTypeRefund          TxType = "REFUND"
)

// ValidTxType reports whether t is a known shed transaction type
func ValidTxType(t TxType) bool {
	switch t {
	case TxTypeFuelPurchase, TxTypePaymentSent, TxTypePaymentReceived, TxTypeAdjustment, TxTypeRefund:
		return true
	}
	return false
}

// SignedAmount applies the ledger sign convention for a transaction type:
// payment_received and refund credit the wallet, fuel_purchase and
// payment_sent debit it, adjustments keep the caller-supplied sign.
func SignedAmount(t TxType, amount int64) int64 {
	magnitude := amount
	if magnitude < 0 && t != TxTypeAdjustment {
		magnitude = -magnitude
	}
	switch t {
	case TxTypePaymentReceived, TxTypeRefund:
		return magnitude
	case TxTypeFuelPurchase, TxTypePaymentSent:
		return -magnitude
	default: // adjustment: signed as given
		return amount
	}
}

// Transaction is an append-only ledger entry for a shed wallet. Entries are
// written to the outbox in the same database transaction as the balance
// mutation and projected to the document store afterwards; only the Status
// field changes after creation.
type Transaction struct {
	ID            uuid.UUID            `json:"id" bson:"_id"`
	WalletID      uuid.UUID            `json:"wallet_id" bson:"wallet_id"`
	Type          TxType               `json:"type" bson:"type"`
	Amount        int64                `json:"amount" bson:"amount"` // signed, minor units
	FuelLogIDs    []uuid.UUID          `json:"fuel_log_ids,omitempty" bson:"fuel_log_ids,omitempty"`
	Method        shared.PaymentMethod `json:"method" bson:"method"`
	Status        shared.TxStatus      `json:"status" bson:"status"`
	Reference     string               `json:"reference,omitempty" bson:"reference,omitempty"`
	Notes         string               `json:"notes,omitempty" bson:"notes,omitempty"`
	ProcessedBy   string               `json:"processed_by" bson:"processed_by"`
	BalanceAfter  int64                `json:"balance_after" bson:"balance_after"`
	CorrelationID string               `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at" bson:"updated_at"`
}

// NewTransaction builds a pending ledger entry with the sign convention applied
func NewTransaction(walletID uuid.UUID, txType TxType, amount int64, method shared.PaymentMethod, processedBy string) *Transaction {
	now := time.Now()
	return &Transaction{
		ID:          uuid.New(),
		WalletID:    walletID,
		Type:        txType,
		Amount:      SignedAmount(txType, amount),
		Method:      method,
		Status:      shared.TxStatusPending,
		ProcessedBy: processedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
