package masscredit

import (
	"context"
	"fmt"

	"github.com/capsule-market/backend/internal/domain/entity"
	errs "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/capsule-market/backend/internal/domain/port/persistence"
	"github.com/shopspring/decimal"
)

// DefaultBatchSize is how many accounts share one commit during a mass credit
const DefaultBatchSize = 10

// Report summarizes one mass credit run
type Report struct {
	Total     int
	Succeeded int
	Failed    int
}

// Coordinator runs administrative mass credits across every account. It
// deliberately trades all-or-nothing atomicity for progress visibility:
// durability is drawn at batch boundaries, a per-item failure is counted and
// skipped via a savepoint, and an already-committed batch stays committed even
// if a later batch fails. A crash mid-run therefore leaves earlier batches
// credited; re-running double-credits them — a known gap with no resumption
// key in the current design.
type Coordinator struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	batchSize    int
}

// NewCoordinator creates a mass credit coordinator with the default batch size
func NewCoordinator(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Coordinator {
	return &Coordinator{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		batchSize:    DefaultBatchSize,
	}
}

// WithBatchSize overrides the commit boundary. Values below 1 are ignored.
func (c *Coordinator) WithBatchSize(size int) *Coordinator {
	if size >= 1 {
		c.batchSize = size
	}
	return c
}

// MassCredit credits amount TON to every account, committing every batchSize
// items, and returns per-item success/failure counts.
func (c *Coordinator) MassCredit(ctx context.Context, amount decimal.Decimal, reference string) (Report, error) {
	if amount.IsNegative() || amount.IsZero() {
		return Report{}, errs.ErrInvalidAmount
	}

	ids, err := c.uow.GetAccountRepository(ctx).ListIDs(ctx)
	if err != nil {
		return Report{}, err
	}

	report := Report{Total: len(ids)}

	for start := 0; start < len(ids); start += c.batchSize {
		end := start + c.batchSize
		if end > len(ids) {
			end = len(ids)
		}

		succeeded, failed := c.processBatch(ctx, ids[start:end], amount, reference)
		report.Succeeded += succeeded
		report.Failed += failed
	}

	c.logger.Info("Mass credit finished", map[string]any{
		"total":     report.Total,
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
		"amount":    amount.String(),
	})
	return report, nil
}

// processBatch credits one batch of accounts inside a single store
// transaction. A failing item rolls back to its savepoint and is counted
// without aborting the remaining items. If the batch cannot begin or commit,
// every item in it counts as failed and later batches still run.
func (c *Coordinator) processBatch(ctx context.Context, ids []int64, amount decimal.Decimal, reference string) (succeeded, failed int) {
	txCtx, err := c.uow.Begin(ctx)
	if err != nil {
		c.logger.Error("Failed to begin mass credit batch", map[string]any{
			"batch_size": len(ids),
			"error":      err.Error(),
		})
		return 0, len(ids)
	}

	accounts := c.uow.GetAccountRepository(txCtx)
	ledger := c.uow.GetTransactionRepository(txCtx)

	for i, id := range ids {
		name := fmt.Sprintf("mass_credit_%d", i)
		if err := c.uow.Savepoint(txCtx, name); err != nil {
			c.logger.Error("Failed to create savepoint", map[string]any{
				"account_id": id,
				"error":      err.Error(),
			})
			failed++
			continue
		}

		if err := c.creditOne(txCtx, accounts, ledger, id, amount, reference); err != nil {
			c.logger.Warn("Mass credit item failed", map[string]any{
				"account_id": id,
				"error":      err.Error(),
			})
			if rbErr := c.uow.RollbackTo(txCtx, name); rbErr != nil {
				c.logger.Error("Failed to rollback to savepoint", map[string]any{
					"account_id": id,
					"error":      rbErr.Error(),
				})
			}
			failed++
			continue
		}
		succeeded++
	}

	if err := c.uow.Commit(txCtx); err != nil {
		c.logger.Error("Failed to commit mass credit batch", map[string]any{
			"batch_size": len(ids),
			"error":      err.Error(),
		})
		// The whole batch is lost on commit failure.
		return 0, len(ids)
	}

	return succeeded, failed
}

func (c *Coordinator) creditOne(
	txCtx context.Context,
	accounts persistence.AccountRepository,
	ledger persistence.TransactionRepository,
	id int64,
	amount decimal.Decimal,
	reference string,
) error {
	if _, err := accounts.AdjustBalance(txCtx, id, amount, entity.CurrencyTON); err != nil {
		return err
	}

	txn, err := entity.NewTransaction(id, entity.KindDeposit, amount, entity.CurrencyTON, c.timeProvider)
	if err != nil {
		return err
	}
	txn.WithReference(reference)
	txn.MarkCompleted()

	return ledger.Create(txCtx, txn)
}
