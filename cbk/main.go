package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/clubfund/clubbook/cmd"
)

// completion describes the CLI surface for shell completion. Install with
// `COMP_INSTALL=1 cbk`.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"config": predict.Files("*.yaml"),
	},
	Sub: map[string]*complete.Command{
		"add-account": {},
		"passbooks":   {},
		"deposit":     {},
		"withdraw":    {},
		"transfer":    {},
		"rejoin":      {},
		"loan":        {},
		"vendor":      {},
		"tx":          {},
		"loans":       {},
		"distribute":  {},
		"recalc":      {},
		"share":       {},
		"export":      {Flags: map[string]complete.Predictor{"o": predict.Files("*")}},
		"import":      {Flags: map[string]complete.Predictor{"i": predict.Files("*.json")}},
		"topic":       {},
		"help":        {},
	},
}

func main() {
	completion.Complete("cbk")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "documentation")
	commander.Register(commander.FlagsCommand(), "documentation")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
