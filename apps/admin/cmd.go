package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dccampos/secretaria/core"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf *core.Config
	db   *sqlx.DB
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate [up|down|status]        - run database migrations")
	fmt.Println("  mktoken -subject NAME           - mint an operator JWT for the admin API")
	fmt.Println("  seed [-count N]                 - insert demo pending applications (dev only)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	mkTokenCmd := flag.NewFlagSet("mktoken", flag.ExitOnError)
	mkTokenSubject := mkTokenCmd.String("subject", "", "A name identifying the operator the token is for.")

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedCount := seedCmd.Int("count", 3, "Number of demo applications to insert.")

	switch args[1] {
	case "migrate":
		return cli.migrate(args[2:])
	case "mktoken":
		if err := mkTokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *mkTokenSubject == "" {
			mkTokenCmd.Usage()
			return errHelp
		}
		return cli.mkToken(*mkTokenSubject)
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.seed(*seedCount)
	default:
		cli.printUsage()
		return errHelp
	}
}
