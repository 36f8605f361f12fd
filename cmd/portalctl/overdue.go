package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"fundportal/internal/middleware"
)

type markOverdueCmd struct {
	date string
}

func (*markOverdueCmd) Name() string     { return "mark-overdue" }
func (*markOverdueCmd) Synopsis() string { return "move sent notices past their due date to Pending" }
func (*markOverdueCmd) Usage() string {
	return `portalctl mark-overdue [-d <YYYY-MM-DD>]

  Sweeps every investor's sent drawdown notices. The reference date
  defaults to today.
`
}

func (c *markOverdueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Reference date (defaults to today)")
}

func (c *markOverdueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	if c.date != "" {
		d, err := time.Parse("2006-01-02", c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid date %q: %v\n", c.date, err)
			return subcommands.ExitUsageError
		}
		asOf = d
	}

	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	moved, err := e.svc.Drawdowns.MarkOverdue(asOf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	ids := make([]string, 0, len(moved))
	for _, n := range moved {
		ids = append(ids, n.ID)
		fmt.Printf("%s  %s  due %s  %s\n", n.ID, n.InvestorID, n.DueDate.Format("2006-01-02"), n.Amount.StringFixed(2))
	}
	e.svc.Audit.Log(middleware.OpsActor, "MARK_OVERDUE", "drawdown_notice", "", "cli",
		map[string]interface{}{"as_of": asOf.Format("2006-01-02"), "notices": ids})

	fmt.Printf("%d notice(s) marked overdue as of %s.\n", len(moved), asOf.Format("2006-01-02"))
	return subcommands.ExitSuccess
}
