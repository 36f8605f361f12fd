package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"fundportal/internal/report"
)

type summaryCmd struct {
	investorID string
	raw        bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display an investor's capital account" }
func (*summaryCmd) Usage() string {
	return `portalctl summary -investor <id> [-raw]

  Displays the dashboard figures, fees, NAV history and overdue notices of
  an investor.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.investorID, "investor", "", "Investor ID")
	f.BoolVar(&c.raw, "raw", false, "Print Markdown without terminal rendering")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.investorID == "" {
		fmt.Fprintln(os.Stderr, "Error: -investor is required")
		return subcommands.ExitUsageError
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

	printMarkdown(report.SummaryMarkdown(*view, *summary), c.raw)
	return subcommands.ExitSuccess
}
