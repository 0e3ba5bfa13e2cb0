// Package seed holds the demo accounts the bank starts with.
package seed

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/bankist/internal/domain"
)

type movement struct {
	amount string
	at     string
}

type account struct {
	owner     string
	pin       int
	rate      string
	currency  domain.Currency
	locale    string
	movements []movement
}

var demo = []account{
	{
		owner:    "Jonas Schmedtmann",
		pin:      1111,
		rate:     "1.2",
		currency: domain.CurrencyEUR,
		locale:   "pt-PT",
		movements: []movement{
			{"200", "2019-11-18T21:31:17.178Z"},
			{"455.23", "2019-12-23T07:42:02.383Z"},
			{"-306.5", "2020-01-28T09:15:04.904Z"},
			{"25000", "2020-04-01T10:17:24.185Z"},
			{"-642.21", "2020-05-08T14:11:59.604Z"},
			{"-133.9", "2020-05-27T17:01:17.194Z"},
			{"79.97", "2020-07-11T23:36:17.929Z"},
			{"1300", "2020-07-12T10:51:36.790Z"},
		},
	},
	{
		owner:    "Jessica Davis",
		pin:      2222,
		rate:     "1.5",
		currency: domain.CurrencyUSD,
		locale:   "en-US",
		movements: []movement{
			{"5000", "2019-11-01T13:15:33.035Z"},
			{"3400", "2019-11-30T09:48:16.867Z"},
			{"-150", "2019-12-25T06:04:23.907Z"},
			{"-790", "2020-01-25T14:18:46.235Z"},
			{"-3210", "2020-02-05T16:33:06.386Z"},
			{"-1000", "2020-04-10T14:43:26.374Z"},
			{"8500", "2020-06-25T18:49:59.371Z"},
			{"-30", "2020-07-26T12:01:20.894Z"},
		},
	},
}

func Accounts() ([]*domain.Account, error) {
	out := make([]*domain.Account, 0, len(demo))
	for _, d := range demo {
		rate, err := decimal.NewFromString(d.rate)
		if err != nil {
			return nil, fmt.Errorf("seed.Accounts: %s: rate: %w", d.owner, err)
		}

		acc, err := domain.NewAccount(d.owner, d.pin, rate, d.currency, d.locale)
		if err != nil {
			return nil, fmt.Errorf("seed.Accounts: %w", err)
		}

		for _, m := range d.movements {
			amount, err := decimal.NewFromString(m.amount)
			if err != nil {
				return nil, fmt.Errorf("seed.Accounts: %s: amount %q: %w", d.owner, m.amount, err)
			}
			at, err := time.Parse(time.RFC3339Nano, m.at)
			if err != nil {
				return nil, fmt.Errorf("seed.Accounts: %s: date %q: %w", d.owner, m.at, err)
			}
			acc.RecordMovement(amount, at)
		}
		out = append(out, acc)
	}
	return out, nil
}
