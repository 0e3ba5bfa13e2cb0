package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/bankist/internal/domain"
)

// SeedTestAccount builds an account whose movements are dated one day apart,
// ending the day before Epoch.
func SeedTestAccount(t *testing.T, owner string, pin int, movements ...string) *domain.Account {
	t.Helper()

	a, err := domain.NewAccount(owner, pin, decimal.RequireFromString("1.2"), domain.CurrencyEUR, "pt-PT")
	if err != nil {
		t.Fatalf("seed test account %s: %v", owner, err)
	}

	start := Epoch.AddDate(0, 0, -len(movements))
	for i, m := range movements {
		amount, err := decimal.NewFromString(m)
		if err != nil {
			t.Fatalf("seed test account %s: movement %q: %v", owner, m, err)
		}
		a.RecordMovement(amount, start.Add(time.Duration(i)*24*time.Hour))
	}
	return a
}

func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func Strings(ds []decimal.Decimal) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}
