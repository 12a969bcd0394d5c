package clubbook

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testTerms(now string) LoanTerms {
	t := DefaultLoanTerms()
	t.Now = MustParse(now)
	return t
}

// round2 compares money at the precision the statements publish.
func round2(m Money) decimal.Decimal { return m.Decimal().Round(2) }

func TestLegacyWholeMonthInterest(t *testing.T) {
	terms := testTerms("2021-01-01")
	principal := INR(50000) // monthly interest 500

	tests := []struct {
		name   string
		start  string
		end    string
		months int
		total  string
	}{
		{"clean months", "2020-06-01", "2020-08-01", 2, "1000"},
		{"remainder under 15 days dropped", "2020-06-01", "2020-08-10", 2, "1000"},
		{"remainder of exactly 15 days dropped", "2020-06-01", "2020-08-16", 2, "1000"},
		{"remainder over 15 days rounds up", "2020-06-01", "2020-08-20", 3, "1500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := terms.ComputeInterest(principal, MustParse(tt.start), MustParse(tt.end))
			if it.Months != tt.months || it.Days != 0 {
				t.Errorf("billed (%dm %dd), want (%dm 0d)", it.Months, it.Days, tt.months)
			}
			if want := decimal.RequireFromString(tt.total); !round2(it.Total).Equal(want) {
				t.Errorf("interest = %s, want %s", it.Total, want)
			}
		})
	}
}

func TestDayProportionalInterest(t *testing.T) {
	terms := testTerms("2024-03-15")

	// 100000 at 1% per month from Jan 1 to Mar 15: two full months plus
	// 14 days worth of March = 2000 + 1000*14/30.
	it := terms.ComputeInterest(INR(100000), MustParse("2024-01-01"), MustParse("2024-03-15"))
	if it.Months != 2 || it.Days != 14 {
		t.Errorf("billed (%dm %dd), want (2m 14d)", it.Months, it.Days)
	}
	if want := decimal.RequireFromString("2466.67"); !round2(it.Total).Equal(want) {
		t.Errorf("interest = %s, want %s", it.Total, want)
	}
}

func TestInterestEndBeforeStart(t *testing.T) {
	terms := testTerms("2024-03-15")
	it := terms.ComputeInterest(INR(100000), MustParse("2024-03-01"), MustParse("2024-02-01"))
	if !it.Total.IsZero() {
		t.Errorf("interest for an inverted period = %s, want zero", it.Total)
	}
}

// Accrued interest must never shrink as the end date advances.
func TestInterestMonotone(t *testing.T) {
	terms := testTerms("2025-01-01")
	principal := INR(100000)
	start := MustParse("2024-01-01")

	prev := decimal.Zero
	for i := 0; i <= 400; i++ {
		it := terms.ComputeInterest(principal, start, start.Add(i))
		if it.Total.Decimal().Cmp(prev) < 0 {
			t.Fatalf("interest dropped at day %d: %s < %s", i, it.Total.Decimal(), prev)
		}
		prev = it.Total.Decimal()
	}
}

func TestNextDue(t *testing.T) {
	tests := []struct {
		name  string
		now   string
		start string
		end   string
		want  string
	}{
		// One month past the last full month, when it is at least 30 days away.
		{"scheduled", "2024-03-01", "2024-01-01", "2024-03-01", "2024-04-01"},
		// A due date inside the next 30 days is pulled to the period end.
		{"pulled to settlement", "2024-03-15", "2024-01-01", "2024-03-15", "2024-03-15"},
		// A candidate that already passed rolls one month forward.
		{"rolled past today", "2024-02-25", "2024-01-01", "2024-01-20", "2024-03-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := testTerms(tt.now)
			it := terms.ComputeInterest(INR(10000), MustParse(tt.start), MustParse(tt.end))
			if got := it.NextDue; got != MustParse(tt.want) {
				t.Errorf("NextDue = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLoanHistory(t *testing.T) {
	terms := testTerms("2024-03-20")

	t.Run("single loan fully repaid", func(t *testing.T) {
		periods := terms.LoanHistory([]Transaction{
			tx(TxLoanTaken, "club", "alice", INR(10000), "2024-01-01"),
			tx(TxLoanRepay, "alice", "club", INR(10000), "2024-03-01"),
		})
		if len(periods) != 1 {
			t.Fatalf("len(periods) = %d, want 1", len(periods))
		}
		p := periods[0]
		if p.Active || !p.Principal.Equal(INR(10000)) || p.End != MustParse("2024-03-01") {
			t.Errorf("period = %+v, want closed 10000 ending 2024-03-01", p)
		}
		if want := decimal.RequireFromString("200"); !round2(p.Interest.Total).Equal(want) {
			t.Errorf("interest = %s, want %s", p.Interest.Total, want)
		}
	})

	t.Run("partial repay reopens the period", func(t *testing.T) {
		periods := terms.LoanHistory([]Transaction{
			tx(TxLoanTaken, "club", "alice", INR(10000), "2024-01-01"),
			tx(TxLoanTaken, "club", "alice", INR(5000), "2024-02-01"),
			tx(TxLoanRepay, "alice", "club", INR(6000), "2024-03-01"),
		})
		if len(periods) != 2 {
			t.Fatalf("len(periods) = %d, want 2", len(periods))
		}
		closed, open := periods[0], periods[1]
		if closed.Active || !closed.Principal.Equal(INR(15000)) {
			t.Errorf("closed period = %+v, want inactive principal 15000", closed)
		}
		if !open.Active || !open.Principal.Equal(INR(9000)) || open.Start != MustParse("2024-03-01") {
			t.Errorf("open period = %+v, want active principal 9000 from 2024-03-01", open)
		}
	})

	t.Run("repay with no outstanding loan is ignored", func(t *testing.T) {
		periods := terms.LoanHistory([]Transaction{
			tx(TxLoanRepay, "alice", "club", INR(1000), "2024-01-01"),
		})
		if len(periods) != 0 {
			t.Fatalf("len(periods) = %d, want 0", len(periods))
		}
	})
}
