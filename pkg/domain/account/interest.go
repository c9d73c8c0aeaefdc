package account

import (
	"time"

	"github.com/amirasaad/digitalbank/pkg/domain/money"
	"github.com/shopspring/decimal"
)

// DefaultMonthlyRate is the savings rate applied when none is configured.
var DefaultMonthlyRate = decimal.RequireFromString("0.0089")

// SimulateInterest projects the balance at target using monthly compounding.
// It is read-only: the account is never modified.
//
// Checks run in order: target before today, fewer than one whole month,
// then the account kind. The running value is compounded once per whole
// month and rounded a single time at the end (half-up, two places).
func (a *Account) SimulateInterest(today, target time.Time, monthlyRate decimal.Decimal) (money.Money, error) {
	today, target = DateOnly(today), DateOnly(target)
	if target.Before(today) {
		return money.Money{}, ErrInvalidDate
	}
	months := WholeMonthsBetween(today, target)
	if months < 1 {
		return money.Money{}, ErrInvalidDate
	}
	if !a.Kind.EarnsInterest() {
		return money.Money{}, ErrInvalidAccountType
	}

	factor := decimal.NewFromInt(1).Add(monthlyRate)
	running := a.Balance.Decimal()
	for i := 0; i < months; i++ {
		running = running.Mul(factor)
	}
	return money.FromDecimal(running.Round(money.DisplayScale)), nil
}

// WholeMonthsBetween counts complete calendar months from start to end.
// A month is complete once end's day-of-month reaches start's. The result is
// negative when end precedes start.
func WholeMonthsBetween(start, end time.Time) int {
	start, end = DateOnly(start), DateOnly(end)
	total := (end.Year()*12 + int(end.Month())) - (start.Year()*12 + int(start.Month()))
	days := end.Day() - start.Day()
	switch {
	case total > 0 && days < 0:
		total--
	case total < 0 && days > 0:
		total++
	}
	return total
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
