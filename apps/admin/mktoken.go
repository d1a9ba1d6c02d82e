package main

import (
	"fmt"

	echoapi "github.com/dccampos/secretaria/apps/api/echo"
)

func (cli *commandLine) mkToken(subject string) error {
	token, err := echoapi.GenerateToken(cli.conf, subject, true /* isAdmin */)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
