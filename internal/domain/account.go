package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

var currencyNames = map[Currency]string{
	CurrencyUSD: "United States dollar",
	CurrencyEUR: "Euro",
	CurrencyGBP: "Pound sterling",
}

func (c Currency) IsValid() bool {
	_, ok := currencyNames[c]
	return ok
}

func (c Currency) DisplayName() string {
	return currencyNames[c]
}

// Account owns one customer's movement log. Movements and their dates live in
// parallel slices that are only ever appended to together, so the two always
// have the same length.
type Account struct {
	Owner        string
	Username     string
	PIN          int
	InterestRate decimal.Decimal
	Currency     Currency
	Locale       string

	movements []decimal.Decimal
	dates     []time.Time
}

func NewAccount(owner string, pin int, interestRate decimal.Decimal, currency Currency, locale string) (*Account, error) {
	username := Username(owner)
	if username == "" {
		return nil, fmt.Errorf("NewAccount: empty owner: %w", ErrInvalidAccount)
	}
	if !currency.IsValid() {
		return nil, fmt.Errorf("NewAccount: currency %q: %w", currency, ErrInvalidAccount)
	}
	if interestRate.IsNegative() {
		return nil, fmt.Errorf("NewAccount: negative interest rate: %w", ErrInvalidAccount)
	}

	return &Account{
		Owner:        owner,
		Username:     username,
		PIN:          pin,
		InterestRate: interestRate,
		Currency:     currency,
		Locale:       locale,
	}, nil
}

// Username derives the login name from the initials of each word in owner,
// lower-cased: "Jonas Schmedtmann" becomes "js".
func Username(owner string) string {
	var b strings.Builder
	for _, word := range strings.Fields(strings.ToLower(owner)) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}

func (a *Account) FirstName() string {
	if first, _, ok := strings.Cut(strings.TrimSpace(a.Owner), " "); ok {
		return first
	}
	return strings.TrimSpace(a.Owner)
}

// RecordMovement appends amount and its timestamp as one pair. Business rules
// are the caller's job; no sign or magnitude check happens here.
func (a *Account) RecordMovement(amount decimal.Decimal, at time.Time) {
	a.movements = append(a.movements, amount)
	a.dates = append(a.dates, at)
}

func (a *Account) Movements() []decimal.Decimal {
	out := make([]decimal.Decimal, len(a.movements))
	copy(out, a.movements)
	return out
}

func (a *Account) MovementDates() []time.Time {
	out := make([]time.Time, len(a.dates))
	copy(out, a.dates)
	return out
}

func (a *Account) Len() int {
	return len(a.movements)
}

func (a *Account) Balance() decimal.Decimal {
	return decimal.Sum(decimal.Zero, a.movements...)
}

// HasMovementAtLeast reports whether any single movement is >= threshold.
func (a *Account) HasMovementAtLeast(threshold decimal.Decimal) bool {
	for _, m := range a.movements {
		if m.GreaterThanOrEqual(threshold) {
			return true
		}
	}
	return false
}

// DaysSince returns the whole number of days between ts and now, rounded to
// the nearest day. Direction does not matter.
func DaysSince(ts, now time.Time) int {
	d := now.Sub(ts)
	if d < 0 {
		d = -d
	}
	return int(decimal.NewFromInt(int64(d)).
		Div(decimal.NewFromInt(int64(24 * time.Hour))).
		Round(0).
		IntPart())
}
