// Command portalctl administers the fund portal from the shell.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"fundportal/internal/logger"
)

// commands lists every portalctl subcommand.
var commands = []subcommands.Command{
	&seedCmd{},
	&createAdminCmd{},
	&summaryCmd{},
	&exportCmd{},
	&markOverdueCmd{},
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
