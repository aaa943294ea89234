package admin

import (
	"context"
	"fmt"

	"github.com/capsule-market/backend/internal/domain/entity"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/capsule-market/backend/internal/domain/usecase/balance"
	"github.com/capsule-market/backend/internal/domain/usecase/masscredit"
	"github.com/capsule-market/backend/internal/domain/usecase/promo"
	"github.com/capsule-market/backend/internal/domain/usecase/purchase"
	"github.com/shopspring/decimal"
)

// Service bundles the administrative operations exposed by the admin console.
// Authorization is a static allow-list of external ids; an empty list leaves
// the console open to everyone, matching the original deployment behavior.
type Service struct {
	balances     *balance.Service
	purchases    *purchase.Service
	promos       *promo.Service
	bulk         *masscredit.Coordinator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	allowList    map[int64]struct{}
}

// NewService creates the admin service with the given allow-list
func NewService(
	balances *balance.Service,
	purchases *purchase.Service,
	promos *promo.Service,
	bulk *masscredit.Coordinator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	adminIDs []int64,
) *Service {
	allowList := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		allowList[id] = struct{}{}
	}

	return &Service{
		balances:     balances,
		purchases:    purchases,
		promos:       promos,
		bulk:         bulk,
		timeProvider: timeProvider,
		logger:       logger,
		allowList:    allowList,
	}
}

// IsAuthorized reports whether the given external id may use admin commands
func (s *Service) IsAuthorized(userID int64) bool {
	if len(s.allowList) == 0 {
		return true
	}
	_, ok := s.allowList[userID]
	return ok
}

// GrantBalance credits amount TON to one account, stamped with an
// administrative reference so the grant is auditable in the ledger
func (s *Service) GrantBalance(ctx context.Context, adminID, userID int64, amount decimal.Decimal) (*entity.Account, error) {
	reference := fmt.Sprintf("admin_%d_%d", adminID, s.timeProvider.Now().Unix())
	account, _, err := s.balances.Credit(ctx, userID, amount, entity.CurrencyTON, reference)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Admin balance grant", map[string]any{
		"admin_id":   adminID,
		"account_id": userID,
		"amount":     amount.String(),
	})
	return account, nil
}

// ListAccounts returns up to limit accounts, newest first
func (s *Service) ListAccounts(ctx context.Context, limit int) ([]*entity.Account, error) {
	return s.balances.ListAccounts(ctx, limit)
}

// Detail aggregates everything the console shows for one account
type Detail struct {
	Account      *entity.Account
	Gifts        []*entity.OwnedGift
	Transactions []*entity.Transaction
}

// AccountDetail returns the account with its gifts and recent ledger entries
func (s *Service) AccountDetail(ctx context.Context, userID int64, txLimit int) (*Detail, error) {
	account, err := s.balances.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	gifts, err := s.purchases.ListGifts(ctx, userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.balances.ListTransactions(ctx, userID, txLimit)
	if err != nil {
		return nil, err
	}

	return &Detail{Account: account, Gifts: gifts, Transactions: transactions}, nil
}

// ListGifts returns all gifts owned by one account
func (s *Service) ListGifts(ctx context.Context, userID int64) ([]*entity.OwnedGift, error) {
	return s.purchases.ListGifts(ctx, userID)
}

// ListTransactions returns recent ledger entries for one account
func (s *Service) ListTransactions(ctx context.Context, userID int64, limit int) ([]*entity.Transaction, error) {
	return s.balances.ListTransactions(ctx, userID, limit)
}

// GrantGift inserts an ownership row without touching balances
func (s *Service) GrantGift(ctx context.Context, req purchase.Request) (*entity.OwnedGift, error) {
	return s.purchases.Grant(ctx, req)
}

// IssuePromoCode creates a single-use voucher for the given TON amount
func (s *Service) IssuePromoCode(ctx context.Context, amount decimal.Decimal) (*entity.PromoCode, error) {
	return s.promos.Issue(ctx, amount)
}

// MassCredit credits amount TON to every account with batched commits
func (s *Service) MassCredit(ctx context.Context, adminID int64, amount decimal.Decimal) (masscredit.Report, error) {
	reference := fmt.Sprintf("admin_%d_%d", adminID, s.timeProvider.Now().Unix())
	return s.bulk.MassCredit(ctx, amount, reference)
}

// BroadcastTargets returns the ids of every account, for console broadcasts
func (s *Service) BroadcastTargets(ctx context.Context) ([]int64, error) {
	return s.balances.ListAccountIDs(ctx)
}
