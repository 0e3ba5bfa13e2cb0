package view

import (
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/bankist/internal/service"
)

type Row struct {
	Number int    `json:"number"`
	Type   string `json:"type"`
	Date   string `json:"date"`
	Amount string `json:"amount"`
	Value  string `json:"value"`
}

type Summary struct {
	In       string `json:"in"`
	Out      string `json:"out"`
	Interest string `json:"interest"`
}

type Timer struct {
	Remaining int    `json:"remaining"`
	Display   string `json:"display"`
}

type Screen struct {
	Welcome      string  `json:"welcome"`
	Date         string  `json:"date"`
	Username     string  `json:"username"`
	Currency     string  `json:"currency"`
	CurrencyName string  `json:"currency_name"`
	Balance      string  `json:"balance"`
	Sorted       bool    `json:"sorted"`
	Movements    []Row   `json:"movements"`
	Summary      Summary `json:"summary"`
	Timer        Timer   `json:"timer"`
}

// Render formats a dashboard for display. Rows come out newest first, or
// largest first when the dashboard is sorted.
func Render(d *service.Dashboard) Screen {
	money := func(v decimal.Decimal) string {
		return FormatCurrency(v, d.Locale, d.Currency)
	}

	rows := make([]Row, len(d.Rows))
	for i, r := range d.Rows {
		rows[len(d.Rows)-1-i] = Row{
			Number: r.Index + 1,
			Type:   string(r.Direction),
			Date:   DayLabel(r.Date, d.Now, d.Locale),
			Amount: r.Amount.String(),
			Value:  money(r.Amount),
		}
	}

	return Screen{
		Welcome:      "Welcome back, " + d.FirstName,
		Date:         FormatDateTime(d.Now, d.Locale),
		Username:     d.Username,
		Currency:     string(d.Currency),
		CurrencyName: d.Currency.DisplayName(),
		Balance:      money(d.Balance),
		Sorted:       d.Sorted,
		Movements:    rows,
		Summary: Summary{
			In:       money(d.Summary.Income),
			Out:      money(d.Summary.Expense.Abs()),
			Interest: money(d.Summary.Interest),
		},
		Timer: Timer{
			Remaining: d.Remaining,
			Display:   FormatTimer(d.Remaining),
		},
	}
}
