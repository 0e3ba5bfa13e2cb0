package view

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/josh-kwaku/bankist/internal/domain"
)

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func TestDayLabel(t *testing.T) {
	tests := []struct {
		name   string
		ts     time.Time
		locale string
		want   string
	}{
		{name: "same day", ts: now.Add(-2 * time.Hour), locale: "en-US", want: "Today"},
		{name: "one day", ts: now.AddDate(0, 0, -1), locale: "en-US", want: "Yesterday"},
		{name: "two days", ts: now.AddDate(0, 0, -2), locale: "en-US", want: "2 days ago"},
		{name: "exactly seven days", ts: now.AddDate(0, 0, -7), locale: "en-US", want: "7 days ago"},
		{name: "exactly eight days", ts: now.AddDate(0, 0, -8), locale: "en-US", want: "10/8/2026"},
		{name: "eight days pt-PT", ts: now.AddDate(0, 0, -8), locale: "pt-PT", want: "08/10/2026"},
		{name: "old date de-DE", ts: time.Date(2020, 7, 12, 10, 51, 0, 0, time.UTC), locale: "de-DE", want: "12.7.2020"},
		{name: "unknown locale", ts: time.Date(2020, 7, 12, 10, 51, 0, 0, time.UTC), locale: "xx-XX", want: "2020-07-12"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DayLabel(tc.ts, now, tc.locale))
		})
	}
}

func TestFormatTimer(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{600, "10:00"},
		{599, "09:59"},
		{61, "01:01"},
		{9, "00:09"},
		{0, "00:00"},
		{-3, "00:00"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatTimer(tc.seconds))
		})
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2026, 3, 5, 14, 7, 0, 0, time.UTC)
	assert.Equal(t, "3/5/2026, 2:07 PM", FormatDateTime(ts, "en-US"))
	assert.Equal(t, "05/03/2026, 14:07", FormatDateTime(ts, "pt-PT"))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,300.00", FormatCurrency(decimal.RequireFromString("1300"), "en-US", domain.CurrencyUSD))
	assert.Equal(t, "-$306.50", FormatCurrency(decimal.RequireFromString("-306.5"), "en-US", domain.CurrencyUSD))

	eur := FormatCurrency(decimal.RequireFromString("455.23"), "pt-PT", domain.CurrencyEUR)
	assert.True(t, strings.HasSuffix(eur, " €"), "got %q", eur)
	assert.Contains(t, eur, "455,23")
}

func TestFormatCurrency_KeepsLargeAmountsExact(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		locale string
		cur    domain.Currency
		want   string
	}{
		{name: "beyond float precision", amount: "12345678901234567.89", locale: "en-US", cur: domain.CurrencyUSD, want: "$12,345,678,901,234,567.89"},
		{name: "rounds half up", amount: "0.005", locale: "en-US", cur: domain.CurrencyUSD, want: "$0.01"},
		{name: "cents survive", amount: "-9007199254740993.01", locale: "en-US", cur: domain.CurrencyUSD, want: "-$9,007,199,254,740,993.01"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatCurrency(decimal.RequireFromString(tc.amount), tc.locale, tc.cur))
		})
	}

	eur := FormatCurrency(decimal.RequireFromString("1234567.5"), "pt-PT", domain.CurrencyEUR)
	assert.True(t, strings.HasSuffix(eur, ",50 €"), "got %q", eur)
}
