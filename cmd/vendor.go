package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/clubfund/clubbook"
	"github.com/clubfund/clubbook/renderer"
)

type vendorCmd struct {
	postFlags
	vendor string
	action string
}

func (*vendorCmd) Name() string     { return "vendor" }
func (*vendorCmd) Synopsis() string { return "post a vendor investment or return" }
func (*vendorCmd) Usage() string {
	return `cbk vendor -v <vendor> -action <invest|returns> -amount <amount> [-d <date>]

  Posts club money deployed into a vendor, or money the vendor returned.
`
}
func (p *vendorCmd) SetFlags(f *flag.FlagSet) {
	p.postFlags.set(f)
	f.StringVar(&p.vendor, "v", "", "Vendor account id (required).")
	f.StringVar(&p.action, "action", "", "Vendor event: invest or returns (required).")
}
func (p *vendorCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.vendor == "" {
		return fail(fmt.Errorf("missing -v vendor account"))
	}
	switch p.action {
	case "invest":
		return post(clubbook.TxVendorInvest, "", p.vendor, &p.postFlags)
	case "returns":
		return post(clubbook.TxVendorReturns, p.vendor, "", &p.postFlags)
	default:
		return fail(fmt.Errorf("unknown vendor action %q, want invest or returns", p.action))
	}
}

type sharesCmd struct {
	vendor string
}

func (*sharesCmd) Name() string     { return "distribute" }
func (*sharesCmd) Synopsis() string { return "distribute a vendor's net return across profit shares" }
func (*sharesCmd) Usage() string {
	return `cbk distribute -v <vendor>

  Runs the profit-share allocator for one vendor: every opted-in member
  receives a pro-rata share on their returns counter, opted-out members'
  would-be shares are tracked as offset.
`
}
func (p *sharesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.vendor, "v", "", "Vendor account id (required).")
}
func (p *sharesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.vendor == "" {
		return fail(fmt.Errorf("missing -v vendor account"))
	}
	engine, store, _, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	alloc, err := engine.DistributeVendorReturns(p.vendor)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Allocation(p.vendor, alloc))
	return subcommands.ExitSuccess
}

type shareCmd struct {
	vendor   string
	member   string
	passbook string
	optOut   bool
	left     bool
}

func (*shareCmd) Name() string     { return "share" }
func (*shareCmd) Synopsis() string { return "opt a member in or out of a vendor's profit share" }
func (*shareCmd) Usage() string {
	return `cbk share -v <vendor> -m <member> [-out] [-left]

  Records whether a member participates in a vendor's profit distribution.
  -out excludes the member (their share is tracked as offset); -left marks
  the member's account as no longer active.
`
}
func (p *shareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.vendor, "v", "", "Vendor account id (required).")
	f.StringVar(&p.member, "m", "", "Member account id (required).")
	f.BoolVar(&p.optOut, "out", false, "Exclude the member from the distribution.")
	f.BoolVar(&p.left, "left", false, "The member's account is no longer active.")
}
func (p *shareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.vendor == "" || p.member == "" {
		return fail(fmt.Errorf("missing -v vendor or -m member account"))
	}
	_, store, _, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	passbooks, err := store.ListPassbooks()
	if err != nil {
		return fail(err)
	}
	passbookID := ""
	for _, pb := range passbooks {
		if pb.AccountID == p.member {
			passbookID = pb.ID
			break
		}
	}
	if passbookID == "" {
		return fail(fmt.Errorf("no passbook for member %q", p.member))
	}

	ps := clubbook.ProfitShare{
		VendorID:      p.vendor,
		MemberID:      p.member,
		PassbookID:    passbookID,
		Active:        !p.optOut,
		AccountActive: !p.left,
	}
	if err := store.UpsertProfitShare(ps); err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded share of %s in %s (active=%v)\n", p.member, p.vendor, ps.Active)
	return subcommands.ExitSuccess
}
