package service

import (
	"github.com/google/uuid"
)

// restartTimer cancels any running countdown and starts a fresh one. Each
// countdown carries a generation id so a tick from a replaced ticker that is
// already in flight is dropped. Callers hold mu.
func (s *BankSession) restartTimer() {
	s.stopTimer()

	gen := uuid.New()
	s.timerGen = gen
	s.remaining = s.settings.TimeoutSeconds
	if s.settings.ExternalTicks {
		return
	}
	s.timer = s.sched.Every(tickInterval, func() { s.tick(gen) })
}

func (s *BankSession) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen = uuid.Nil
	s.remaining = 0
}

func (s *BankSession) tick(gen uuid.UUID) {
	s.mu.Lock()
	if gen != s.timerGen {
		s.mu.Unlock()
		return
	}
	expired, hook := s.countdown()
	s.mu.Unlock()

	if expired != "" && hook != nil {
		hook(expired)
	}
}

// OnTimerTick advances the countdown by one second. It returns true when this
// tick expired the session. It is meant for sessions built with
// Settings.ExternalTicks; combined with the internal ticker every second
// would be counted twice.
func (s *BankSession) OnTimerTick() bool {
	s.mu.Lock()
	expired, hook := s.countdown()
	s.mu.Unlock()

	if expired != "" && hook != nil {
		hook(expired)
	}
	return expired != ""
}

// countdown returns the username of the session it expired, if any. Callers
// hold mu.
func (s *BankSession) countdown() (string, func(string)) {
	if s.current == nil {
		return "", nil
	}

	s.remaining--
	if s.remaining > 0 {
		return "", nil
	}

	username := s.current.Username
	s.endSession("inactivity timeout")
	s.logger.Warn("session expired", "username", username)
	return username, s.onExpired
}
