// Package renderer turns clubbook reports into markdown strings for the CLI.
package renderer

import (
	"fmt"
	"strings"

	"github.com/clubfund/clubbook"
)

// Transactions renders a transaction list as a markdown table.
func Transactions(txs []clubbook.Transaction) string {
	var b strings.Builder
	b.WriteString("# Transactions\n\n")
	if len(txs) == 0 {
		b.WriteString("No transactions.\n")
		return b.String()
	}
	b.WriteString("| Date | Type | From | To | Amount | Method | Note |\n")
	b.WriteString("|---|---|---|---|---:|---|---|\n")
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			tx.On, tx.Type, orDash(tx.From), orDash(tx.To), tx.Amount, orDash(tx.Method), orDash(tx.Note))
	}
	return b.String()
}

// Passbook renders one passbook's payload and distribution counters.
func Passbook(pb clubbook.Passbook) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Passbook %s (%s)\n\n", pb.AccountID, pb.Kind)
	if len(pb.Payload) == 0 {
		b.WriteString("Empty passbook.\n")
		return b.String()
	}
	b.WriteString("| Metric | Amount |\n|---|---:|\n")
	for _, metric := range pb.Metrics() {
		fmt.Fprintf(&b, "| %s | %s |\n", metric, pb.Get(metric))
	}
	return b.String()
}

// Passbooks renders a summary table of every passbook's headline figures.
func Passbooks(pbs []clubbook.Passbook) string {
	var b strings.Builder
	b.WriteString("# Passbooks\n\n")
	b.WriteString("| Account | Kind | Balance | Deposits | Loan | Returns | Offset |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---:|\n")
	for _, pb := range pbs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			pb.AccountID, pb.Kind,
			pb.Get(clubbook.MetricBalance), pb.Get(clubbook.MetricDeposits),
			pb.Get(clubbook.MetricLoanBalance), pb.Returns(), pb.Offset())
	}
	return b.String()
}

// LoanStatement renders an account's reconstructed loan periods.
func LoanStatement(accountID string, periods []clubbook.LoanPeriod) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Loan statement for %s\n\n", accountID)
	if len(periods) == 0 {
		b.WriteString("No loan history.\n")
		return b.String()
	}
	b.WriteString("| Period | Principal | Months | Days | Interest | Next due | Status |\n")
	b.WriteString("|---|---:|---:|---:|---:|---|---|\n")
	for _, p := range periods {
		status := "closed"
		if p.Active {
			status = "active"
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %s | %s | %s |\n",
			p.Interest.Period, p.Principal, p.Interest.Months, p.Interest.Days,
			p.Interest.Total, p.Interest.NextDue, status)
	}
	return b.String()
}

// Allocation renders the outcome of a vendor profit-share distribution.
func Allocation(vendorID string, a clubbook.Allocation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Profit share for %s\n\n", vendorID)
	if a.Skipped {
		b.WriteString("Distribution gate is closed for this vendor; nothing allocated.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "- Net returns: **%s**\n", a.Returns)
	fmt.Fprintf(&b, "- Per-member share: **%s** across %d members\n", a.MemberShare, a.Included)
	fmt.Fprintf(&b, "- Offset (to %d opted-out members): **%s**\n", a.Excluded, a.Offset)
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
