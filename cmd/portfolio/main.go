package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"portfoliotracker/internal/config"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cfg := config.Load()

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&holdingsCmd{cfg: cfg}, "reports")
	commander.Register(&historyCmd{cfg: cfg}, "reports")
	commander.Register(&statsCmd{cfg: cfg}, "reports")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
