package main

import (
	"github.com/pressly/goose/v3"

	appfs "github.com/dccampos/secretaria/fs"
)

func (cli *commandLine) migrate(args []string) error {
	command := "up"
	if len(args) > 0 {
		command = args[0]
	}
	goose.SetBaseFS(appfs.FS)
	return goose.Run(command, cli.db.DB, "migrations", args[1:]...)
}
