package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/clubfund/clubbook"
	"github.com/clubfund/clubbook/docs"
)

type recalcCmd struct{}

func (*recalcCmd) Name() string     { return "recalc" }
func (*recalcCmd) Synopsis() string { return "rebuild every passbook from the transaction history" }
func (*recalcCmd) Usage() string {
	return `cbk recalc

  Replays the entire transaction history in chronological order and rebuilds
  every passbook from a zeroed state, committing once at the end. Run it
  while the books are otherwise quiet.
`
}
func (*recalcCmd) SetFlags(f *flag.FlagSet) {}
func (*recalcCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	engine, store, _, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	if err := engine.RecalculateAll(); err != nil {
		return fail(err)
	}
	fmt.Println("Recalculated all passbooks.")
	return subcommands.ExitSuccess
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the transaction log as JSONL" }
func (*exportCmd) Usage() string {
	return `cbk export [-o <file>]

  Writes every transaction as one JSON object per line, in canonical order.
  Defaults to stdout.
`
}
func (p *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "", "Output file. Defaults to stdout.")
}
func (p *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, store, _, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	txs, err := store.ListTransactions("")
	if err != nil {
		return fail(err)
	}

	out := os.Stdout
	if p.output != "" {
		f, err := os.Create(p.output)
		if err != nil {
			return fail(err)
		}
		defer f.Close()
		out = f
	}
	if err := clubbook.EncodeTransactions(out, txs); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type importCmd struct {
	input  string
	recalc bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a legacy bookkeeping dump" }
func (*importCmd) Usage() string {
	return `cbk import -i <dump.json> [-recalc]

  Reads the old bookkeeping system's JSON backup, creates the passbooks and
  profit shares it describes, and appends its transactions. With -recalc,
  rebuilds every passbook from the imported history afterwards.
`
}
func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.input, "i", "", "Legacy dump file (required).")
	f.BoolVar(&p.recalc, "recalc", true, "Recalculate all passbooks after the import.")
}
func (p *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.input == "" {
		return fail(fmt.Errorf("missing -i dump file"))
	}
	engine, store, cfg, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	in, err := os.Open(p.input)
	if err != nil {
		return fail(err)
	}
	defer in.Close()

	imp, err := clubbook.ImportLegacy(in, cfg.Currency)
	if err != nil {
		return fail(err)
	}
	for _, pb := range imp.Passbooks {
		if err := store.CreatePassbook(pb); err != nil {
			return fail(err)
		}
	}
	for _, tx := range imp.Transactions {
		if _, err := store.AppendTransaction(tx, nil); err != nil {
			return fail(err)
		}
	}
	for _, ps := range imp.ProfitShares {
		if err := store.UpsertProfitShare(ps); err != nil {
			return fail(err)
		}
	}
	fmt.Printf("Imported %d passbooks, %d transactions, %d profit shares\n",
		len(imp.Passbooks), len(imp.Transactions), len(imp.ProfitShares))

	if p.recalc {
		if err := engine.RecalculateAll(); err != nil {
			return fail(err)
		}
		fmt.Println("Recalculated all passbooks.")
	}
	return subcommands.ExitSuccess
}

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show a documentation topic" }
func (*topicCmd) Usage() string {
	return `cbk topic [<name>|*]

  Shows a documentation topic ("*" for all). Without arguments, lists the
  available topics.
`
}
func (*topicCmd) SetFlags(f *flag.FlagSet) {}
func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		names, err := docs.AllTopics()
		if err != nil {
			return fail(err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return subcommands.ExitSuccess
	}
	doc, err := docs.GetTopic(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
