package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionDeposit    Direction = "deposit"
	DirectionWithdrawal Direction = "withdrawal"
)

// DirectionOf classifies a movement for display. Only strictly positive
// amounts are deposits; zero is shown as a withdrawal.
func DirectionOf(amount decimal.Decimal) Direction {
	if amount.IsPositive() {
		return DirectionDeposit
	}
	return DirectionWithdrawal
}

// MovementRow is one ledger entry as handed to the presentation layer. Index
// is the entry's position in the account's chronological log.
type MovementRow struct {
	Index     int
	Amount    decimal.Decimal
	Direction Direction
	Date      time.Time
}

// Rows returns the movement log in chronological order, or ascending by
// amount when sorted is set. Each row keeps its own date either way.
func (a *Account) Rows(sorted bool) []MovementRow {
	rows := make([]MovementRow, len(a.movements))
	for i, m := range a.movements {
		rows[i] = MovementRow{
			Index:     i,
			Amount:    m,
			Direction: DirectionOf(m),
			Date:      a.dates[i],
		}
	}
	if sorted {
		slices.SortStableFunc(rows, func(x, y MovementRow) int {
			return x.Amount.Cmp(y.Amount)
		})
	}
	return rows
}

// interestThreshold is the smallest per-deposit interest that gets paid out.
// Deposits earning less than this earn nothing.
var interestThreshold = decimal.NewFromInt(1)

var hundred = decimal.NewFromInt(100)

type Summary struct {
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Interest decimal.Decimal
}

// Summary totals deposits and withdrawals. Expense keeps its negative sign.
func (a *Account) Summary() Summary {
	s := Summary{
		Income:   decimal.Zero,
		Expense:  decimal.Zero,
		Interest: decimal.Zero,
	}
	for _, m := range a.movements {
		switch {
		case m.IsPositive():
			s.Income = s.Income.Add(m)
			interest := m.Mul(a.InterestRate).Div(hundred)
			if interest.GreaterThanOrEqual(interestThreshold) {
				s.Interest = s.Interest.Add(interest)
			}
		case m.IsNegative():
			s.Expense = s.Expense.Add(m)
		}
	}
	return s
}
