package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - register:   Create a new account
// - login:      Check credentials and record the login time
// - seen-since: Report whether the account logged in at or after an instant
// - delete:     Remove an account
// - migrate:    Create or update the accounts schema (postgres only)

func main() {
	// Subcommand definitions
	registerCmd := flag.NewFlagSet("register", flag.ExitOnError)
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	seenSinceCmd := flag.NewFlagSet("seen-since", flag.ExitOnError)
	deleteCmd := flag.NewFlagSet("delete", flag.ExitOnError)
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)

	// register parameters
	registerStore := registerCmd.String("store", storePostgres, "Store backend (memory, postgres)")
	registerUsername := registerCmd.String("username", "", "Username for the new account")
	registerEmail := registerCmd.String("email", "", "Email address for the new account")
	registerPassword := registerCmd.String("password", "", "Password for the new account")

	// login parameters
	loginStore := loginCmd.String("store", storePostgres, "Store backend (memory, postgres)")
	loginUsername := loginCmd.String("username", "", "Username to log in as")
	loginPassword := loginCmd.String("password", "", "Password to check")

	// seen-since parameters
	seenSinceStore := seenSinceCmd.String("store", storePostgres, "Store backend (memory, postgres)")
	seenSinceUsername := seenSinceCmd.String("username", "", "Username to check")
	seenSinceAt := seenSinceCmd.String("since", "", "Instant to compare against (RFC 3339, e.g. 2026-09-01T00:00:00Z)")

	// delete parameters
	deleteStore := deleteCmd.String("store", storePostgres, "Store backend (memory, postgres)")
	deleteUsername := deleteCmd.String("username", "", "Username of the account to delete")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flags := accountFlags{
		Register: registerFlags{
			cmd:      registerCmd,
			store:    registerStore,
			username: registerUsername,
			email:    registerEmail,
			password: registerPassword,
		},
		Login: loginFlags{
			cmd:      loginCmd,
			store:    loginStore,
			username: loginUsername,
			password: loginPassword,
		},
		SeenSince: seenSinceFlags{
			cmd:      seenSinceCmd,
			store:    seenSinceStore,
			username: seenSinceUsername,
			since:    seenSinceAt,
		},
		Delete: deleteFlags{
			cmd:      deleteCmd,
			store:    deleteStore,
			username: deleteUsername,
		},
		Migrate: migrateFlags{
			cmd: migrateCmd,
		},
	}

	if err := runSubcommand(ctx, &flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type accountFlags struct {
	Register  registerFlags
	Login     loginFlags
	SeenSince seenSinceFlags
	Delete    deleteFlags
	Migrate   migrateFlags
}

type registerFlags struct {
	cmd      *flag.FlagSet
	store    *string
	username *string
	email    *string
	password *string
}

type loginFlags struct {
	cmd      *flag.FlagSet
	store    *string
	username *string
	password *string
}

type seenSinceFlags struct {
	cmd      *flag.FlagSet
	store    *string
	username *string
	since    *string
}

type deleteFlags struct {
	cmd      *flag.FlagSet
	store    *string
	username *string
}

type migrateFlags struct {
	cmd *flag.FlagSet
}

func runSubcommand(ctx context.Context, flags *accountFlags) error {
	switch os.Args[1] {
	case "register":
		if err := flags.Register.cmd.Parse(os.Args[2:]); err != nil {
			return errors.Wrap(err, "failed to parse register flags")
		}

		return runRegister(ctx, &flags.Register)
	case "login":
		if err := flags.Login.cmd.Parse(os.Args[2:]); err != nil {
			return errors.Wrap(err, "failed to parse login flags")
		}

		return runLogin(ctx, &flags.Login)
	case "seen-since":
		if err := flags.SeenSince.cmd.Parse(os.Args[2:]); err != nil {
			return errors.Wrap(err, "failed to parse seen-since flags")
		}

		return runSeenSince(ctx, &flags.SeenSince)
	case "delete":
		if err := flags.Delete.cmd.Parse(os.Args[2:]); err != nil {
			return errors.Wrap(err, "failed to parse delete flags")
		}

		return runDelete(ctx, &flags.Delete)
	case "migrate":
		if err := flags.Migrate.cmd.Parse(os.Args[2:]); err != nil {
			return errors.Wrap(err, "failed to parse migrate flags")
		}

		return runMigrate(ctx)
	default:
		printUsage()

		return errors.New("unknown subcommand")
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: accountd <subcommand> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Subcommands:")
	fmt.Fprintln(os.Stderr, "  register    Create a new account (-username, -email, -password)")
	fmt.Fprintln(os.Stderr, "  login       Check credentials and record the login time (-username, -password)")
	fmt.Fprintln(os.Stderr, "  seen-since  Report login activity since an instant (-username, -since)")
	fmt.Fprintln(os.Stderr, "  delete      Remove an account (-username)")
	fmt.Fprintln(os.Stderr, "  migrate     Create or update the accounts schema (postgres only)")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "All subcommands except migrate accept -store memory|postgres.")
}
