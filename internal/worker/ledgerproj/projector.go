// Package ledgerproj projects committed outbox rows into the document store
// ledgers. Rows are written by the API inside the balance-moving database
// transaction; this worker makes them visible to ledger queries.
package ledgerproj

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/akrgroup/backoffice/internal/domain/outbox"
	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/akrgroup/backoffice/internal/domain/supplier"
	"github.com/akrgroup/backoffice/internal/domain/wallet"
)

// Projector writes a single outbox message into its ledger collection
type Projector interface {
	Project(ctx context.Context, message *outbox.Message) error
}

// ProjectorImpl implements Projector over the Mongo ledger repositories
type ProjectorImpl struct {
	outboxRepo     outbox.Repository
	wallets        wallet.Repository
	shedLedger     wallet.TransactionRepository
	supplierLedger supplier.TransactionRepository
	logger         *slog.Logger
}

// NewProjector creates a new projector
func NewProjector(
	logger *slog.Logger,
	outboxRepo outbox.Repository,
	wallets wallet.Repository,
	shedLedger wallet.TransactionRepository,
	supplierLedger supplier.TransactionRepository,
) Projector {
	return &ProjectorImpl{
		outboxRepo:     outboxRepo,
		wallets:        wallets,
		shedLedger:     shedLedger,
		supplierLedger: supplierLedger,
		logger:         logger,
	}
}

// Project decodes the payload by aggregate kind and inserts it as a COMPLETED
// ledger entry. Duplicate inserts are treated as already-projected, so a crash
// between ledger write and outbox update is safe to replay.
func (p *ProjectorImpl) Project(ctx context.Context, message *outbox.Message) error {
	logger := p.logger.With("outbox_id", message.ID, "transaction_id", message.TransactionID)

	var err error
	switch message.Kind {
	case shared.AggregateShedWallet:
		err = p.projectWalletTransaction(ctx, logger, message)
	case shared.AggregateSupplier:
		err = p.projectSupplierTransaction(ctx, logger, message)
	default:
		// Undecodable rows never succeed on retry, park them immediately
		logger.Error("Unknown aggregate kind in outbox message", "kind", string(message.Kind))
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			logger.Error("Also failed to mark outbox message FAILED_TO_PUBLISH", "error", updateErr)
		}
		return fmt.Errorf("unknown aggregate kind %q for outbox %d", message.Kind, message.ID)
	}
	if err != nil {
		return err
	}

	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		return fmt.Errorf("ledger write for %s OK, but failed to mark outbox %d as PROCESSED: %w", message.TransactionID, message.ID, err)
	}

	logger.Info("Outbox message projected to ledger")
	return nil
}

func (p *ProjectorImpl) projectWalletTransaction(ctx context.Context, logger *slog.Logger, message *outbox.Message) error {
	tx, err := message.GetWalletTransaction()
	if err != nil {
		return p.parkUndecodable(ctx, logger, message, err)
	}

	tx.Status = shared.TxStatusCompleted
	tx.UpdatedAt = time.Now().UTC()

	if err := p.shedLedger.Create(ctx, tx); err != nil {
		if errors.Is(err, wallet.ErrDuplicateTransaction{}) {
			logger.Info("Shed ledger entry already projected, marking completed")
			if err := p.shedLedger.UpdateStatus(ctx, tx.ID, shared.TxStatusCompleted); err != nil {
				return err
			}
			return p.releaseEarmark(ctx, logger, tx)
		}
		return fmt.Errorf("failed to create shed ledger entry %s: %w", tx.ID, err)
	}
	return p.releaseEarmark(ctx, logger, tx)
}

// releaseEarmark clears the PendingTransfer earmark once a payment_sent entry
// is in the ledger. It also runs on the duplicate-replay path, where the
// repository clamp keeps an already-released earmark at zero. A failure leaves
// the outbox row pending so the release is retried.
func (p *ProjectorImpl) releaseEarmark(ctx context.Context, logger *slog.Logger, tx *wallet.Transaction) error {
	if tx.Type != wallet.TxTypePaymentSent {
		return nil
	}

	amount := -tx.Amount // payment_sent entries carry negative amounts
	if err := p.wallets.ReleasePendingTransfer(ctx, tx.WalletID, amount); err != nil {
		return fmt.Errorf("failed to release pending transfer for wallet %s: %w", tx.WalletID, err)
	}

	logger.Info("Pending transfer released", "wallet_id", tx.WalletID, "amount", amount)
	return nil
}

func (p *ProjectorImpl) projectSupplierTransaction(ctx context.Context, logger *slog.Logger, message *outbox.Message) error {
	tx, err := message.GetSupplierTransaction()
	if err != nil {
		return p.parkUndecodable(ctx, logger, message, err)
	}

	tx.Status = shared.TxStatusCompleted
	tx.UpdatedAt = time.Now().UTC()

	if err := p.supplierLedger.Create(ctx, tx); err != nil {
		if errors.Is(err, supplier.ErrDuplicateTransaction{}) {
			logger.Info("Supplier ledger entry already projected, marking completed")
			return p.supplierLedger.UpdateStatus(ctx, tx.ID, shared.TxStatusCompleted)
		}
		return fmt.Errorf("failed to create supplier ledger entry %s: %w", tx.ID, err)
	}
	return nil
}

func (p *ProjectorImpl) parkUndecodable(ctx context.Context, logger *slog.Logger, message *outbox.Message, decodeErr error) error {
	logger.Error("Failed to decode ledger entry from outbox payload", "error", decodeErr)
	if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
		logger.Error("Also failed to mark outbox message FAILED_TO_PUBLISH", "error", updateErr)
	}
	return fmt.Errorf("decode payload for outbox %d failed: %w", message.ID, decodeErr)
}
