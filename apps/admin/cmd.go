package main

import (
	"errors"
	"fmt"

	"github.com/lakouedu/lakou/core"
	"github.com/lakouedu/lakou/storage/datastore"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf *core.Config
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  createdb - create the app database and user if they do not exist")
	fmt.Println("  migrate  - apply pending database migrations")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "createdb":
		return datastore.CreateIfNotExist(cli.conf)
	case "migrate":
		return cli.migrate()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) migrate() error {
	db, err := datastore.Open(cli.conf)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := datastore.Ping(db); err != nil {
		return err
	}
	return datastore.Migrate(db)
}
