package main

import (
	"log"
	"os"

	"github.com/AxelGHMM/CACE/core"
	"github.com/AxelGHMM/CACE/storage/database"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// sqlx.Open is lazy; commands that do not hit the DB still work
	// before the database exists.
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()

	cli := commandLine{
		conf:    conf,
		db:      db,
		usrRepo: database.NewUserRepository(db),
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
