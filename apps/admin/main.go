package main

import (
	"log"
	"os"

	"github.com/darasahub/darasa/core"
	"github.com/darasahub/darasa/core/tenant"
	"github.com/darasahub/darasa/core/user"
	emailsvc "github.com/darasahub/darasa/services/email"
	inmemdb "github.com/darasahub/darasa/storage/database/inmem"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	db, err := inmemdb.Open()
	errAndDie(err)
	defer db.Close()
	errAndDie(inmemdb.Seed(db))

	registry, err := tenant.NewRegistry(inmemdb.NewTenantRepository(db))
	errAndDie(err)

	// start CLI
	cli := commandLine{
		usrSvc:   user.NewService(inmemdb.NewUserRepository(db), emailsvc.NewConsoleService(conf), conf),
		registry: registry,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
