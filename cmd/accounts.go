package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/clubfund/clubbook"
	"github.com/clubfund/clubbook/renderer"
)

type addAccountCmd struct {
	account     string
	kind        string
	lending     bool
	calcReturns bool
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "create an account and its passbook" }
func (*addAccountCmd) Usage() string {
	return `cbk add-account -a <account> -kind <member|vendor|club> [-lending] [-calc-returns]

  Creates an account's passbook. Exactly one club passbook must exist;
  -lending and -calc-returns only apply to vendors.
`
}
func (p *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.account, "a", "", "Account id (required).")
	f.StringVar(&p.kind, "kind", "member", "Account kind: member, vendor, or club.")
	f.BoolVar(&p.lending, "lending", false, "The vendor lends money (always distributes).")
	f.BoolVar(&p.calcReturns, "calc-returns", false, "Open the vendor's distribution gate.")
}
func (p *addAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.account == "" {
		return fail(fmt.Errorf("missing -a account id"))
	}
	var kind clubbook.Kind
	switch p.kind {
	case "member":
		kind = clubbook.KindMember
	case "vendor":
		kind = clubbook.KindVendor
	case "club":
		kind = clubbook.KindClub
	default:
		return fail(fmt.Errorf("unknown kind %q, want member, vendor, or club", p.kind))
	}

	_, store, _, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	if kind == clubbook.KindClub {
		passbooks, err := store.ListPassbooks()
		if err != nil {
			return fail(err)
		}
		for _, pb := range passbooks {
			if pb.Kind == clubbook.KindClub {
				return fail(fmt.Errorf("club passbook already exists (account %q)", pb.AccountID))
			}
		}
	}

	pb := clubbook.NewPassbook(uuid.NewString(), p.account, kind)
	pb.Lending = p.lending
	pb.CalcReturns = p.calcReturns
	if err := store.CreatePassbook(pb); err != nil {
		return fail(err)
	}
	fmt.Printf("Created %s passbook for %s\n", kind, p.account)
	return subcommands.ExitSuccess
}

type passbooksCmd struct {
	account string
}

func (*passbooksCmd) Name() string     { return "passbooks" }
func (*passbooksCmd) Synopsis() string { return "show passbook balances" }
func (*passbooksCmd) Usage() string {
	return `cbk passbooks [-a <account>]

  Shows the headline figures of every passbook, or the full payload of one
  account's passbook.
`
}
func (p *passbooksCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.account, "a", "", "Show this single account in full.")
}
func (p *passbooksCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, store, _, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	passbooks, err := store.ListPassbooks()
	if err != nil {
		return fail(err)
	}
	if p.account == "" {
		printMarkdown(renderer.Passbooks(passbooks))
		return subcommands.ExitSuccess
	}
	for _, pb := range passbooks {
		if pb.AccountID == p.account {
			printMarkdown(renderer.Passbook(pb))
			return subcommands.ExitSuccess
		}
	}
	return fail(fmt.Errorf("no passbook for account %q", p.account))
}
