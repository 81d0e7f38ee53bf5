package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/akrgroup/backoffice/internal/domain/supplier"
	"github.com/akrgroup/backoffice/internal/domain/wallet"
)

// Message stores a committed ledger transaction for reliable projection into
// the document store. Rows are written in the same database transaction that
// moved the account balance.
type Message struct {
	ID            int64                `json:"id"`
	TransactionID uuid.UUID            `json:"transaction_id"`
	AccountID     uuid.UUID            `json:"account_id"`
	Kind          shared.AggregateKind `json:"kind"`
	Payload       json.RawMessage      `json:"payload"`
	Status        shared.OutboxStatus  `json:"status"`
	Attempts      int                  `json:"attempts"`
	CreatedAt     time.Time            `json:"created_at"`
	LastAttemptAt *time.Time           `json:"last_attempt_at,omitempty"`
}

// NewWalletMessage wraps a shed wallet transaction for projection
func NewWalletMessage(tx *wallet.Transaction) (*Message, error) {
	payload, err := json.Marshal(tx)
	if err != nil {
		return nil, err
	}

	return &Message{
		TransactionID: tx.ID,
		AccountID:     tx.WalletID,
		Kind:          shared.AggregateShedWallet,
		Payload:       payload,
		Status:        shared.OutboxStatusPending,
		Attempts:      0,
		CreatedAt:     time.Now(),
	}, nil
}

// NewSupplierMessage wraps a supplier ledger transaction for projection
func NewSupplierMessage(tx *supplier.Transaction) (*Message, error) {
	payload, err := json.Marshal(tx)
	if err != nil {
		return nil, err
	}

	return &Message{
		TransactionID: tx.ID,
		AccountID:     tx.SupplierID,
		Kind:          shared.AggregateSupplier,
		Payload:       payload,
		Status:        shared.OutboxStatusPending,
		Attempts:      0,
		CreatedAt:     time.Now(),
	}, nil
}

func (m *Message) IncrementAttempts() {
	m.Attempts++
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsProcessed() {
	m.Status = shared.OutboxStatusProcessed
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsFailed() {
	m.Status = shared.OutboxStatusFailedToPublish
	now := time.Now()
	m.LastAttemptAt = &now
}

// GetWalletTransaction extracts a shed wallet transaction from the payload
func (m *Message) GetWalletTransaction() (*wallet.Transaction, error) {
	if m.Kind != shared.AggregateShedWallet {
		return nil, ErrKindMismatch{Want: shared.AggregateShedWallet, Got: m.Kind}
	}
	var tx wallet.Transaction
	if err := json.Unmarshal(m.Payload, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetSupplierTransaction extracts a supplier transaction from the payload
func (m *Message) GetSupplierTransaction() (*supplier.Transaction, error) {
	if m.Kind != shared.AggregateSupplier {
		return nil, ErrKindMismatch{Want: shared.AggregateSupplier, Got: m.Kind}
	}
	var tx supplier.Transaction
	if err := json.Unmarshal(m.Payload, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// ErrKindMismatch indicates a payload decoded as the wrong aggregate kind
type ErrKindMismatch struct {
	Want shared.AggregateKind
	Got  shared.AggregateKind
}

func (e ErrKindMismatch) Error() string {
	return "outbox payload kind mismatch: want " + string(e.Want) + ", got " + string(e.Got)
}
