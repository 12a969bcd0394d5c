package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/clubfund/clubbook"
	"github.com/clubfund/clubbook/renderer"
)

// postFlags are the flags shared by every posting command.
type postFlags struct {
	amount string
	date   string
	method string
	note   string
}

func (p *postFlags) set(f *flag.FlagSet) {
	f.StringVar(&p.amount, "amount", "", "Amount to post (required).")
	f.StringVar(&p.date, "d", "today", "Transaction date.")
	f.StringVar(&p.method, "method", "", "Payment method (cash, upi, bank...).")
	f.StringVar(&p.note, "note", "", "Optional note.")
}

// transaction builds the common part of a posting from the flags.
func (p *postFlags) transaction(txType clubbook.TxType, from, to string, cfg *clubbook.Config) (clubbook.Transaction, error) {
	amount, err := decimal.NewFromString(p.amount)
	if err != nil {
		return clubbook.Transaction{}, fmt.Errorf("invalid amount %q: %w", p.amount, err)
	}
	on, err := clubbook.ParseDate(p.date)
	if err != nil {
		return clubbook.Transaction{}, err
	}
	return clubbook.Transaction{
		Type:   txType,
		From:   from,
		To:     to,
		Amount: clubbook.M(amount, cfg.Currency),
		On:     on,
		Method: p.method,
		Note:   p.note,
	}, nil
}

// post opens the app, posts one transaction, and reports the result.
func post(txType clubbook.TxType, from, to string, p *postFlags) subcommands.ExitStatus {
	engine, store, cfg, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	tx, err := p.transaction(txType, from, to, cfg)
	if err != nil {
		return fail(err)
	}
	tx, err = engine.PostTransaction(tx)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Posted %s %s on %s (%s)\n", tx.Type, tx.Amount, tx.On, tx.ID)
	return subcommands.ExitSuccess
}

type depositCmd struct {
	postFlags
	member string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "post a member deposit into the club" }
func (*depositCmd) Usage() string {
	return `cbk deposit -m <member> -amount <amount> [-d <date>] [-method <method>] [-note <note>]

  Posts a deposit: the member's passbook gains deposits and balance, the
  club passbook gains held funds.
`
}
func (p *depositCmd) SetFlags(f *flag.FlagSet) {
	p.postFlags.set(f)
	f.StringVar(&p.member, "m", "", "Member account id (required).")
}
func (p *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.member == "" {
		return fail(fmt.Errorf("missing -m member account"))
	}
	return post(clubbook.TxDeposit, "", p.member, &p.postFlags)
}

type withdrawCmd struct {
	postFlags
	member string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "post a member withdrawal from the club" }
func (*withdrawCmd) Usage() string {
	return `cbk withdraw -m <member> -amount <amount> [-d <date>] [-method <method>] [-note <note>]

  Posts a withdrawal. The amount is split into a principal portion (up to
  the member's cumulative deposits) and a profit portion beyond them.
`
}
func (p *withdrawCmd) SetFlags(f *flag.FlagSet) {
	p.postFlags.set(f)
	f.StringVar(&p.member, "m", "", "Member account id (required).")
}
func (p *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.member == "" {
		return fail(fmt.Errorf("missing -m member account"))
	}
	return post(clubbook.TxWithdrawal, "", p.member, &p.postFlags)
}

type transferCmd struct {
	postFlags
	from string
	to   string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "post a balance transfer between two accounts" }
func (*transferCmd) Usage() string {
	return `cbk transfer -from <account> -to <account> -amount <amount> [-d <date>]

  Moves balance from one account to another; the club passbook is untouched.
`
}
func (p *transferCmd) SetFlags(f *flag.FlagSet) {
	p.postFlags.set(f)
	f.StringVar(&p.from, "from", "", "Giving account id (required).")
	f.StringVar(&p.to, "to", "", "Receiving account id (required).")
}
func (p *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.from == "" || p.to == "" {
		return fail(fmt.Errorf("missing -from or -to account"))
	}
	return post(clubbook.TxTransfer, p.from, p.to, &p.postFlags)
}

type rejoinCmd struct {
	postFlags
	member string
}

func (*rejoinCmd) Name() string     { return "rejoin" }
func (*rejoinCmd) Synopsis() string { return "post a returning member's buy-back" }
func (*rejoinCmd) Usage() string {
	return `cbk rejoin -m <member> -amount <amount> [-d <date>]

  Posts a returning member's buy-back, counted as fresh deposits.
`
}
func (p *rejoinCmd) SetFlags(f *flag.FlagSet) {
	p.postFlags.set(f)
	f.StringVar(&p.member, "m", "", "Member account id (required).")
}
func (p *rejoinCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.member == "" {
		return fail(fmt.Errorf("missing -m member account"))
	}
	return post(clubbook.TxRejoin, "", p.member, &p.postFlags)
}

type txCmd struct {
	account string
	head    int
	tail    int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions in the ledger" }
func (*txCmd) Usage() string {
	return `cbk tx [-a <account>] [-head <n>] [-tail <n>]

  Lists transactions in canonical processing order, with options for
  filtering and limiting the output.
`
}
func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.account, "a", "", "Only transactions touching this account.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}
func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		return fail(fmt.Errorf("-head and -tail flags cannot be used together"))
	}
	_, store, _, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	transactions, err := store.ListTransactions(p.account)
	if err != nil {
		return fail(err)
	}
	if p.head > 0 && len(transactions) > p.head {
		transactions = transactions[:p.head]
	}
	if p.tail > 0 && len(transactions) > p.tail {
		transactions = transactions[len(transactions)-p.tail:]
	}
	printMarkdown(renderer.Transactions(transactions))
	return subcommands.ExitSuccess
}
