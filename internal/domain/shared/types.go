package shared

// TxStatus defines ledger transaction processing states
type TxStatus string

const (
	TxStatusPending   TxStatus = "PENDING"
	TxStatusCompleted TxStatus = "COMPLETED"
	TxStatusFailed    TxStatus = "FAILED"
	TxStatusCancelled TxStatus = "CANCELLED"
)

// PaymentMethod defines how money moved for a ledger transaction
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodCheque   PaymentMethod = "CHEQUE"
	PaymentMethodOther    PaymentMethod = "OTHER"
)

// ValidPaymentMethod reports whether m is a known payment method
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodCheque, PaymentMethodOther:
		return true
	}
	return false
}

// RecordStatus is the soft lifecycle state carried by most records
type RecordStatus string

const (
	RecordStatusActive   RecordStatus = "ACTIVE"
	RecordStatusInactive RecordStatus = "INACTIVE"
)

// AggregateKind identifies which balance-bearing account a ledger entry belongs to
type AggregateKind string

const (
	AggregateShedWallet AggregateKind = "SHED_WALLET"
	AggregateSupplier   AggregateKind = "SUPPLIER"
)

// OutboxStatus defines ledger projection states for outbox rows
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)
