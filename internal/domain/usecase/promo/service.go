package promo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/capsule-market/backend/internal/domain/entity"
	errs "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/capsule-market/backend/internal/domain/port/persistence"
	"github.com/shopspring/decimal"
)

const (
	// codePrefixLength is the number of random letters in front of the amount suffix
	codePrefixLength = 8

	// DefaultMaxAttempts bounds collision retries during code generation
	DefaultMaxAttempts = 5

	codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Generator produces candidate code strings for a given amount
type Generator func(amount decimal.Decimal) string

// DefaultGenerator builds a code from 8 random uppercase letters followed by
// the amount rounded to the nearest whole TON (minimum 1)
func DefaultGenerator(amount decimal.Decimal) string {
	buf := make([]byte, codePrefixLength)
	for i := range buf {
		buf[i] = codeLetters[rand.Intn(len(codeLetters))]
	}

	suffix := amount.Round(0).IntPart()
	if suffix < 1 {
		suffix = 1
	}
	return string(buf) + strconv.FormatInt(suffix, 10)
}

// Service implements promo code issuance and redemption
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	generate     Generator
	maxAttempts  int
}

// NewService creates a new promo code service
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		generate:     DefaultGenerator,
		maxAttempts:  DefaultMaxAttempts,
	}
}

// WithGenerator overrides the code generator. Used by tests to pin codes.
func (s *Service) WithGenerator(g Generator) *Service {
	s.generate = g
	return s
}

// Issue generates a unique code worth the given TON amount and persists it
// unused. Collisions with existing codes are retried up to a bounded attempt
// count; if every attempt collides the operation fails with
// ErrCodeGenerationExhausted.
func (s *Service) Issue(ctx context.Context, amount decimal.Decimal) (*entity.PromoCode, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, errs.ErrInvalidAmount
	}

	codes := s.uow.GetPromoCodeRepository(ctx)

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		candidate := s.generate(amount)

		// Cheap existence check first; the unique index on code still
		// backstops the race between lookup and insert.
		_, err := codes.GetByCode(ctx, candidate)
		if err == nil {
			s.logger.Warn("Promo code collision, retrying", map[string]any{
				"code":    candidate,
				"attempt": attempt + 1,
			})
			continue
		}
		if !errors.Is(err, errs.ErrPromoCodeNotFound) {
			return nil, err
		}

		code, err := entity.NewPromoCode(candidate, amount, s.timeProvider)
		if err != nil {
			return nil, err
		}

		err = codes.Create(ctx, code)
		if err == nil {
			s.logger.Info("Promo code issued", map[string]any{
				"code":    code.Code,
				"amount":  amount.String(),
				"attempt": attempt + 1,
			})
			return code, nil
		}

		if !errors.Is(err, errs.ErrConstraintViolation) {
			return nil, err
		}

		s.logger.Warn("Promo code collision, retrying", map[string]any{
			"code":    candidate,
			"attempt": attempt + 1,
		})
	}

	s.logger.Error("Promo code generation exhausted", map[string]any{
		"amount":   amount.String(),
		"attempts": s.maxAttempts,
	})
	return nil, fmt.Errorf("%w: %d attempts", errs.ErrCodeGenerationExhausted, s.maxAttempts)
}

// Redeem marks the code used, credits the account's TON balance by the code's
// amount and records a deposit ledger entry referencing the code. All effects
// are one store transaction: there is no redeem-without-credit or
// credit-without-mark-used state.
func (s *Service) Redeem(ctx context.Context, code string, accountID int64) (*entity.Transaction, error) {
	if code == "" {
		return nil, errs.ErrValidation
	}
	if accountID <= 0 {
		return nil, errs.ErrInvalidAccountID
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	txn, err := s.redeemInTx(txCtx, code, accountID)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to rollback redemption", map[string]any{
				"code":  code,
				"error": rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		s.logger.Error("Failed to commit redemption", map[string]any{
			"code":  code,
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Promo code redeemed", map[string]any{
		"code":       code,
		"account_id": accountID,
	})
	return txn, nil
}

func (s *Service) redeemInTx(txCtx context.Context, code string, accountID int64) (*entity.Transaction, error) {
	codes := s.uow.GetPromoCodeRepository(txCtx)
	accounts := s.uow.GetAccountRepository(txCtx)
	ledger := s.uow.GetTransactionRepository(txCtx)

	// The row lock serializes concurrent redemptions of the same code: the
	// loser re-reads used=true and fails instead of double-crediting.
	voucher, err := codes.GetByCodeForUpdate(txCtx, code)
	if err != nil {
		return nil, err
	}

	if err := voucher.Redeem(accountID, s.timeProvider); err != nil {
		return nil, err
	}
	if err := codes.MarkRedeemed(txCtx, voucher); err != nil {
		return nil, err
	}

	if _, err := accounts.AdjustBalance(txCtx, accountID, voucher.Amount, entity.CurrencyTON); err != nil {
		return nil, err
	}

	txn, err := entity.NewTransaction(accountID, entity.KindDeposit, voucher.Amount, entity.CurrencyTON, s.timeProvider)
	if err != nil {
		return nil, err
	}
	txn.WithReference("promo_" + voucher.Code)
	txn.MarkCompleted()

	if err := ledger.Create(txCtx, txn); err != nil {
		return nil, errs.NewLedgerError(accountID, string(entity.KindDeposit), voucher.Amount.String(),
			"failed to record promo redemption", err)
	}

	return txn, nil
}
