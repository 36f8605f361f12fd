package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type createAdminCmd struct {
	email    string
	password string
}

func (*createAdminCmd) Name() string     { return "create-admin" }
func (*createAdminCmd) Synopsis() string { return "create an administrator login" }
func (*createAdminCmd) Usage() string {
	return `portalctl create-admin -email <email> -password <password>

  Creates an administrator. An existing login with that email is left as is.
`
}

func (c *createAdminCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Administrator email")
	f.StringVar(&c.password, "password", "", "Administrator password (at least 8 characters)")
}

func (c *createAdminCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" || len(c.password) < 8 {
		fmt.Fprintln(os.Stderr, "Error: -email and a -password of at least 8 characters are required")
		return subcommands.ExitUsageError
	}

	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	user, err := e.svc.Users.EnsureAdmin(c.email, c.password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Administrator %s (%s) is ready.\n", user.Email, user.ID)
	return subcommands.ExitSuccess
}
