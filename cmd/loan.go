package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/clubfund/clubbook"
	"github.com/clubfund/clubbook/renderer"
)

type loanCmd struct {
	postFlags
	member string
	action string
}

func (*loanCmd) Name() string     { return "loan" }
func (*loanCmd) Synopsis() string { return "post a loan event (taken, repay, interest)" }
func (*loanCmd) Usage() string {
	return `cbk loan -m <member> -action <taken|repay|interest> -amount <amount> [-d <date>]

  Posts a loan event for a member. "taken" hands club funds out and opens or
  extends a loan period; "repay" closes the current period; "interest"
  records an interest payment.
`
}
func (p *loanCmd) SetFlags(f *flag.FlagSet) {
	p.postFlags.set(f)
	f.StringVar(&p.member, "m", "", "Member account id (required).")
	f.StringVar(&p.action, "action", "", "Loan event: taken, repay, or interest (required).")
}
func (p *loanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.member == "" {
		return fail(fmt.Errorf("missing -m member account"))
	}
	switch p.action {
	case "taken":
		return post(clubbook.TxLoanTaken, "", p.member, &p.postFlags)
	case "repay":
		return post(clubbook.TxLoanRepay, p.member, "", &p.postFlags)
	case "interest":
		return post(clubbook.TxLoanInterest, p.member, "", &p.postFlags)
	default:
		return fail(fmt.Errorf("unknown loan action %q, want taken, repay, or interest", p.action))
	}
}

type loansCmd struct {
	member string
}

func (*loansCmd) Name() string     { return "loans" }
func (*loansCmd) Synopsis() string { return "show an account's loan statement" }
func (*loansCmd) Usage() string {
	return `cbk loans -m <member>

  Rebuilds the account's loan periods from its transaction history and shows
  accrued interest and the next due date for each.
`
}
func (p *loansCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.member, "m", "", "Member account id (required).")
}
func (p *loansCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.member == "" {
		return fail(fmt.Errorf("missing -m member account"))
	}
	engine, store, _, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	periods, err := engine.LoanHistory(p.member)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.LoanStatement(p.member, periods))
	return subcommands.ExitSuccess
}
