package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"fundportal/internal/models"
	"fundportal/internal/seed"
)

type seedCmd struct {
	email    string
	password string
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "load the sample fund into the database" }
func (*seedCmd) Usage() string {
	return `portalctl seed [-email <login> -password <password>]

  Loads the sample investor with its capital calls, fees, NAV history,
  documents and the fund's portfolio. With -email, an investor login is
  created and linked to the sample investor.
`
}

func (c *seedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Investor login to create and link")
	f.StringVar(&c.password, "password", "", "Password of the investor login")
}

func (c *seedCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email != "" && len(c.password) < 8 {
		fmt.Fprintln(os.Stderr, "Error: -password must be at least 8 characters")
		return subcommands.ExitUsageError
	}

	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	var userID *string
	if c.email != "" {
		user, err := e.svc.Users.CreateUser(c.email, c.password, models.RoleInvestor)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		userID = &user.ID
	}

	investor, err := seed.Load(e.db.DB(), userID)
	if errors.Is(err, seed.ErrAlreadySeeded) {
		fmt.Println("Sample fund already loaded.")
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Loaded sample investor %s (%s).\n", investor.Name, investor.ID)
	if c.email != "" {
		fmt.Printf("Login %s is linked to it.\n", c.email)
	}
	return subcommands.ExitSuccess
}
