// Package view turns session state into display strings: relative day
// labels, the MM:SS countdown and locale-aware currency amounts.
package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/josh-kwaku/bankist/internal/domain"
)

// relativeDays is the last day count shown as "N days ago". Older dates are
// printed as calendar dates.
const relativeDays = 7

var dateLayouts = map[string]string{
	"en-US": "1/2/2006",
	"en-GB": "02/01/2006",
	"pt-PT": "02/01/2006",
	"pt-BR": "02/01/2006",
	"de-DE": "2.1.2006",
	"fr-FR": "02/01/2006",
}

const fallbackDateLayout = "2006-01-02"

func DayLabel(ts, now time.Time, locale string) string {
	days := domain.DaysSince(ts, now)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= relativeDays:
		return fmt.Sprintf("%d days ago", days)
	default:
		return FormatDate(ts, locale)
	}
}

func FormatDate(t time.Time, locale string) string {
	layout, ok := dateLayouts[locale]
	if !ok {
		layout = fallbackDateLayout
	}
	return t.Format(layout)
}

// FormatDateTime renders the header timestamp shown after login.
func FormatDateTime(t time.Time, locale string) string {
	clock := "15:04"
	if strings.HasPrefix(locale, "en-US") {
		clock = "3:04 PM"
	}
	return FormatDate(t, locale) + ", " + t.Format(clock)
}

func FormatTimer(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func FormatCurrency(amount decimal.Decimal, locale string, cur domain.Currency) string {
	tag := language.Make(locale)
	p := message.NewPrinter(tag)

	symbol := string(cur)
	if unit, err := currency.ParseISO(string(cur)); err == nil {
		symbol = p.Sprint(currency.Symbol(unit))
	}

	digits := formatDigits(p, amount.Abs())

	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}

	if base, _ := tag.Base(); base.String() == "en" {
		return sign + symbol + digits
	}
	return sign + digits + " " + symbol
}

// formatDigits groups the integer part with the locale's separators and keeps
// the two fraction digits exact. Only whole units go through the number
// formatter, so large balances never pass through a float.
func formatDigits(p *message.Printer, amount decimal.Decimal) string {
	whole, frac, _ := strings.Cut(amount.StringFixed(2), ".")

	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = p.Sprint(number.Decimal(n))
	}

	point := p.Sprint(number.Decimal(0.5, number.Scale(1)))
	point = strings.TrimSuffix(strings.TrimPrefix(point, "0"), "5")

	return whole + point + frac
}
