package main

import (
	"log"
	"os"

	"github.com/dccampos/secretaria/core"
	"github.com/dccampos/secretaria/storage/database"
)

func main() {
	conf := core.NewConfig()

	db, err := database.Open(conf)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer func() { _ = db.Close() }()

	cli := &commandLine{conf: conf, db: db}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			log.Fatal(err)
		}
		os.Exit(2)
	}
}
