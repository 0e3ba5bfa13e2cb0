package service

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/bankist/internal/clock"
	"github.com/josh-kwaku/bankist/internal/domain"
)

const tickInterval = time.Second

type Settings struct {
	TimeoutSeconds int
	LoanDelay      time.Duration
	// ExternalTicks leaves the countdown to the caller: no ticker is armed
	// and the session only counts down through OnTimerTick.
	ExternalTicks bool
}

func DefaultSettings() Settings {
	return Settings{
		TimeoutSeconds: 600,
		LoanDelay:      2500 * time.Millisecond,
	}
}

// BankSession owns every account and the single active login. All state
// changes go through its methods and are serialized by mu, so the timer and
// loan callbacks never interleave with user actions.
type BankSession struct {
	mu sync.Mutex

	accounts []*domain.Account
	current  *domain.Account

	sessionID uuid.UUID
	remaining int
	timer     clock.Task
	timerGen  uuid.UUID
	sorted    bool
	loans     map[uuid.UUID]*pendingLoan

	sched     clock.Scheduler
	logger    *slog.Logger
	settings  Settings
	onExpired func(username string)
}

func NewBankSession(accounts []*domain.Account, sched clock.Scheduler, logger *slog.Logger, settings Settings) (*BankSession, error) {
	seen := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		if a == nil || a.Username == "" {
			return nil, fmt.Errorf("NewBankSession: %w", domain.ErrInvalidAccount)
		}
		if _, dup := seen[a.Username]; dup {
			return nil, fmt.Errorf("NewBankSession: %q: %w", a.Username, domain.ErrDuplicateUsername)
		}
		seen[a.Username] = struct{}{}
	}

	if settings.TimeoutSeconds <= 0 {
		settings.TimeoutSeconds = DefaultSettings().TimeoutSeconds
	}
	if settings.LoanDelay < 0 {
		settings.LoanDelay = 0
	}

	return &BankSession{
		accounts: slices.Clone(accounts),
		loans:    make(map[uuid.UUID]*pendingLoan),
		sched:    sched,
		logger:   logger,
		settings: settings,
	}, nil
}

// OnExpired registers a hook called after the inactivity timer logs the
// session out. It runs without the session lock held.
func (s *BankSession) OnExpired(fn func(username string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = fn
}

// Login starts a session for the account with the given username. The PIN is
// only compared once an account has been found.
func (s *BankSession) Login(username string, pin int) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, found := s.lookup(username)
	if !found {
		s.logger.Info("login rejected", "username", username, "reason", "unknown username")
		return uuid.Nil, fmt.Errorf("Login: %w", domain.ErrAuthenticationFailed)
	}
	if acc.PIN != pin {
		s.logger.Info("login rejected", "username", username, "reason", "pin mismatch")
		return uuid.Nil, fmt.Errorf("Login: %w", domain.ErrAuthenticationFailed)
	}

	if s.current != nil {
		s.endSession("relogin")
	}

	s.current = acc
	s.sessionID = uuid.New()
	s.sorted = false
	s.restartTimer()

	s.logger.Info("session started",
		"username", acc.Username,
		"session_id", s.sessionID,
		"timeout_s", s.settings.TimeoutSeconds,
	)
	return s.sessionID, nil
}

// Logout ends the active session. It is a no-op when nobody is logged in.
func (s *BankSession) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	s.endSession("logout")
}

func (s *BankSession) Transfer(receiverUsername string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return fmt.Errorf("Transfer: %w", domain.ErrNotAuthenticated)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("Transfer: %w", domain.ErrInvalidAmount)
	}

	receiver, found := s.lookup(receiverUsername)
	if !found {
		return fmt.Errorf("Transfer: %q: %w", receiverUsername, domain.ErrUnknownReceiver)
	}
	if receiver == s.current {
		return fmt.Errorf("Transfer: %w", domain.ErrSelfTransfer)
	}
	if s.current.Balance().LessThan(amount) {
		return fmt.Errorf("Transfer: %w", domain.ErrInsufficientBalance)
	}

	now := s.sched.Now()
	s.current.RecordMovement(amount.Neg(), now)
	receiver.RecordMovement(amount, now)
	s.sorted = false
	s.restartTimer()

	s.logger.Info("transfer completed",
		"session_id", s.sessionID,
		"sender", s.current.Username,
		"receiver", receiver.Username,
		"amount", amount.String(),
	)
	return nil
}

func (s *BankSession) CloseAccount(username string, pin int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return fmt.Errorf("CloseAccount: %w", domain.ErrNotAuthenticated)
	}
	if username != s.current.Username || pin != s.current.PIN {
		return fmt.Errorf("CloseAccount: %w", domain.ErrAuthenticationFailed)
	}

	closed := s.current
	s.accounts = slices.DeleteFunc(s.accounts, func(a *domain.Account) bool { return a == closed })
	s.endSession("account closed")

	s.logger.Info("account closed", "username", closed.Username, "remaining_accounts", len(s.accounts))
	return nil
}

// ToggleSort flips the movement ordering and returns the new value.
func (s *BankSession) ToggleSort() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false, fmt.Errorf("ToggleSort: %w", domain.ErrNotAuthenticated)
	}
	s.sorted = !s.sorted
	s.restartTimer()
	return s.sorted, nil
}

// IsActive reports whether id names the live session.
func (s *BankSession) IsActive(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && id != uuid.Nil && id == s.sessionID
}

func (s *BankSession) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

func (s *BankSession) Usernames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.accounts))
	for i, a := range s.accounts {
		out[i] = a.Username
	}
	return out
}

func (s *BankSession) lookup(username string) (*domain.Account, bool) {
	for _, a := range s.accounts {
		if a.Username == username {
			return a, true
		}
	}
	return nil, false
}

func (s *BankSession) contains(acc *domain.Account) bool {
	return slices.Contains(s.accounts, acc)
}

// endSession clears the login, its timer and any loans still in flight.
// Callers hold mu.
func (s *BankSession) endSession(reason string) {
	s.stopTimer()
	s.cancelLoans()

	s.logger.Info("session ended",
		"username", s.current.Username,
		"session_id", s.sessionID,
		"reason", reason,
	)

	s.current = nil
	s.sessionID = uuid.Nil
	s.sorted = false
}
