// Package cmd implements the CLI application to manage the club's books.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/clubfund/clubbook"
	"github.com/clubfund/clubbook/sqlite"
)

// Register the subcommands.
// A main package calls Register() to allow subcommands, and Execute() on the
// user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addAccountCmd{}, "accounts")
	c.Register(&passbooksCmd{}, "accounts")

	c.Register(&depositCmd{}, "transactions")
	c.Register(&withdrawCmd{}, "transactions")
	c.Register(&transferCmd{}, "transactions")
	c.Register(&rejoinCmd{}, "transactions")
	c.Register(&loanCmd{}, "transactions")
	c.Register(&vendorCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")

	c.Register(&loansCmd{}, "reports")
	c.Register(&sharesCmd{}, "reports")

	c.Register(&recalcCmd{}, "maintenance")
	c.Register(&shareCmd{}, "maintenance")
	c.Register(&exportCmd{}, "maintenance")
	c.Register(&importCmd{}, "maintenance")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var configFile = flag.String("config", "clubbook.yaml", "Path to the club configuration file")

// openApp loads the configuration and opens the engine over the configured
// store. The caller closes the returned store.
func openApp() (*clubbook.Engine, *sqlite.Store, *clubbook.Config, error) {
	cfg, err := clubbook.LoadConfig(*configFile)
	if err != nil {
		return nil, nil, nil, err
	}
	terms, err := cfg.LoanTerms()
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := sqlite.Open(cfg.Database.SQLitePath)
	if err != nil {
		return nil, nil, nil, err
	}
	return clubbook.New(store, terms), store, cfg, nil
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Fall back to the raw markdown rather than losing the report.
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
