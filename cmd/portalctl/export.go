package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"fundportal/internal/report"
)

type exportCmd struct {
	investorID string
	output     string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export an investor's capital account statement" }
func (*exportCmd) Usage() string {
	return `portalctl export -investor <id> [-o <file.xlsx>]

  Writes the capital account statement workbook. The file defaults to
  statement_<id>.xlsx in the current directory.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.investorID, "investor", "", "Investor ID")
	f.StringVar(&c.output, "o", "", "Output file")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.investorID == "" {
		fmt.Fprintln(os.Stderr, "Error: -investor is required")
		return subcommands.ExitUsageError
	}
	output := c.output
	if output == "" {
		output = report.StatementFilename(c.investorID)
	}

	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	view, summary, err := e.svc.Dashboard.GetReport(ctx, c.investorID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	file, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := report.WriteStatement(file, *view, *summary); err != nil {
		file.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Statement written to %s\n", output)
	return subcommands.ExitSuccess
}
