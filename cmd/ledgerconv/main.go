package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/hbtools/ledgerconv/cmd"
)

func main() {
	// Flag defaults may live in a .env file; a missing file is fine.
	_ = godotenv.Load()

	// Install shell completion; returns immediately outside completion mode.
	completion := &complete.Command{
		Sub: map[string]*complete.Command{
			"convert": {Flags: map[string]complete.Predictor{
				"options": predict.Files("*.yaml"),
				"summary": predict.Nothing,
			}},
			"query": {Flags: map[string]complete.Predictor{
				"q": predict.Something,
			}},
			"topic": {},
		},
	}
	completion.Complete("ledgerconv")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
