package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/bankist/internal/domain"
)

// Dashboard is a point-in-time copy of everything the presentation layer
// renders for the logged-in account.
type Dashboard struct {
	SessionID uuid.UUID
	Owner     string
	FirstName string
	Username  string
	Currency  domain.Currency
	Locale    string
	Balance   decimal.Decimal
	Summary   domain.Summary
	Rows      []domain.MovementRow
	Sorted    bool
	Remaining int
	Now       time.Time
}

func (s *BankSession) Dashboard() (*Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, fmt.Errorf("Dashboard: %w", domain.ErrNotAuthenticated)
	}

	acc := s.current
	return &Dashboard{
		SessionID: s.sessionID,
		Owner:     acc.Owner,
		FirstName: acc.FirstName(),
		Username:  acc.Username,
		Currency:  acc.Currency,
		Locale:    acc.Locale,
		Balance:   acc.Balance(),
		Summary:   acc.Summary(),
		Rows:      acc.Rows(s.sorted),
		Sorted:    s.sorted,
		Remaining: s.remaining,
		Now:       s.sched.Now(),
	}, nil
}
