package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/bankist/internal/clock"
	"github.com/josh-kwaku/bankist/internal/domain"
)

// loanCoverRatio is the share of a loan that at least one prior movement
// must cover on its own.
var loanCoverRatio = decimal.RequireFromString("0.1")

type pendingLoan struct {
	id      uuid.UUID
	account *domain.Account
	amount  decimal.Decimal
	task    clock.Task
}

// RequestLoan validates a loan for the current account and schedules the
// deposit after the configured processing delay. Amounts are floored to whole
// units first. The returned id identifies the pending deposit.
func (s *BankSession) RequestLoan(amount decimal.Decimal) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return uuid.Nil, fmt.Errorf("RequestLoan: %w", domain.ErrNotAuthenticated)
	}

	amount = amount.Floor()
	if !amount.IsPositive() {
		return uuid.Nil, fmt.Errorf("RequestLoan: %w", domain.ErrInvalidAmount)
	}
	if !s.current.HasMovementAtLeast(amount.Mul(loanCoverRatio)) {
		return uuid.Nil, fmt.Errorf("RequestLoan: %w", domain.ErrLoanNotEligible)
	}

	loan := &pendingLoan{
		id:      uuid.New(),
		account: s.current,
		amount:  amount,
	}
	s.loans[loan.id] = loan
	loan.task = s.sched.AfterFunc(s.settings.LoanDelay, func() { s.depositLoan(loan.id) })

	s.sorted = false
	s.restartTimer()

	s.logger.Info("loan scheduled",
		"session_id", s.sessionID,
		"loan_id", loan.id,
		"username", s.current.Username,
		"amount", amount.String(),
		"delay", s.settings.LoanDelay,
	)
	return loan.id, nil
}

// PendingLoans counts loan deposits that have been accepted but not landed.
func (s *BankSession) PendingLoans() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loans)
}

func (s *BankSession) depositLoan(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, ok := s.loans[id]
	if !ok {
		return
	}
	delete(s.loans, id)

	if !s.contains(loan.account) {
		s.logger.Warn("loan dropped, account no longer exists", "loan_id", id, "username", loan.account.Username)
		return
	}

	loan.account.RecordMovement(loan.amount, s.sched.Now())
	s.logger.Info("loan deposited", "loan_id", id, "username", loan.account.Username, "amount", loan.amount.String())
}

// cancelLoans stops every pending deposit. Callers hold mu.
func (s *BankSession) cancelLoans() {
	for id, loan := range s.loans {
		loan.task.Stop()
		delete(s.loans, id)
		s.logger.Info("loan cancelled", "loan_id", id, "username", loan.account.Username)
	}
}
