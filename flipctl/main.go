// Command flipctl keeps the ledger of items bought at auctions and resold,
// and reports their profit.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/flip/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// completes the command line and exits when invoked by the shell
	cmd.Completion().Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
