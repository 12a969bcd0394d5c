package clubbook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LoanTerms carries the club's lending parameters. The day-count cut-over is
// deliberately explicit configuration rather than a buried constant: loans
// started before it bill in whole months, loans started on or after it bill
// day-proportionally.
type LoanTerms struct {
	MonthlyRate     decimal.Decimal
	DayCountCutover Date

	// Now is the clock used for due-date rolling and open periods.
	// Zero means Today; tests pin it.
	Now Date
}

// DefaultLoanTerms are the club's historical parameters: 1% per month,
// day-proportional billing from 2021-04-01.
func DefaultLoanTerms() LoanTerms {
	return LoanTerms{
		MonthlyRate:     decimal.NewFromFloat(0.01),
		DayCountCutover: NewDate(2021, 4, 1),
	}
}

func (t LoanTerms) now() Date {
	if t.Now.IsZero() {
		return Today()
	}
	return t.Now
}

// Interest is the outcome of one interest computation over a loan period.
type Interest struct {
	Months  int    // full months elapsed in the billed span
	Days    int    // leftover days in the billed span
	Total   Money  // accrued interest
	NextDue Date   // next interest due date
	Period  string // human label for the billed span
}

// ComputeInterest accrues interest on principal from start to end at the
// monthly rate.
//
// Periods starting before the day-count cut-over bill in whole months: a
// remainder over 15 days rounds the month count up. Periods starting on or
// after it bill the elapsed span as full months plus days/30.
func (t LoanTerms) ComputeInterest(principal Money, start, end Date) Interest {
	if end.Before(start) {
		end = start
	}
	months, days := start.Span(end)
	nextDue := t.nextDue(start, months, end)

	if start.Before(t.DayCountCutover) {
		// Whole-month billing.
		if days > 15 {
			months++
		}
		days = 0
		return Interest{
			Months:  months,
			Days:    0,
			Total:   principal.MulDecimal(t.MonthlyRate).MulInt(months),
			NextDue: nextDue,
			Period:  periodLabel(start, end, months, 0),
		}
	}

	// Day-proportional billing over the elapsed span. The due-date-bounded
	// span is capped at the loan's actual end, so whether or not the end
	// lands within 20 days of the next due date the billed span is the
	// elapsed one; billing the raw due-date horizon instead would make
	// accrued interest drop as the end date advances.
	monthly := principal.MulDecimal(t.MonthlyRate)
	daily := monthly.MulDecimal(decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(30)))
	return Interest{
		Months:  months,
		Days:    days,
		Total:   monthly.MulInt(months).Add(daily),
		NextDue: nextDue,
		Period:  periodLabel(start, end, months, days),
	}
}

// nextDue advances start by months+1 months, rolls one more month if that
// candidate has already passed now, and clamps to the period's end when the
// end date lands before the candidate.
func (t LoanTerms) nextDue(start Date, months int, end Date) Date {
	due := start.AddMonth(months + 1)
	if !due.After(t.now()) {
		due = due.AddMonth(1)
	}
	if !end.IsZero() && due.After(end) && end.DaysBetween(due) < 30 {
		due = end
	}
	return due
}

func periodLabel(start, end Date, months, days int) string {
	return fmt.Sprintf("%s → %s (%dm %dd)", start, end, months, days)
}

// LoanPeriod is one contiguous stretch of outstanding principal,
// reconstructed from the loan-taken/loan-repay history. Never persisted:
// recomputed on demand, it cannot drift from the transaction log.
type LoanPeriod struct {
	Principal Money
	Start     Date
	End       Date // zero while the period is still open
	Interest  Interest
	Active    bool
}

// LoanHistory walks an account's loan transactions in ascending time order
// and rebuilds its loan periods. A loan-taken adds to the balance and opens
// or extends a period; a loan-repay closes the current period with interest
// accrued to the repay date, reduces the balance, and reopens at the repay
// date if principal remains. A trailing open period is emitted while the
// balance is positive.
func (t LoanTerms) LoanHistory(txs []Transaction) []LoanPeriod {
	var periods []LoanPeriod
	var balance Money
	var start Date
	open := false

	for _, tx := range txs {
		switch tx.Type {
		case TxLoanTaken:
			if !open {
				start = tx.On
				open = true
			}
			balance = balance.Add(tx.Amount)
		case TxLoanRepay:
			if !open {
				continue // repay with no outstanding loan, nothing to close
			}
			periods = append(periods, LoanPeriod{
				Principal: balance,
				Start:     start,
				End:       tx.On,
				Interest:  t.ComputeInterest(balance, start, tx.On),
			})
			balance = balance.Sub(tx.Amount)
			if balance.IsPositive() {
				start = tx.On
			} else {
				open = false
			}
		}
	}

	if open && balance.IsPositive() {
		periods = append(periods, LoanPeriod{
			Principal: balance,
			Start:     start,
			Interest:  t.ComputeInterest(balance, start, t.now()),
			Active:    true,
		})
	}
	return periods
}
