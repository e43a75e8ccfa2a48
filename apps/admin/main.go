package main

import (
	"log"
	"os"

	"github.com/karames/unilog/core"
	"github.com/karames/unilog/core/student"
	"github.com/karames/unilog/core/teacher"
	"github.com/karames/unilog/storage/database"
	inmemdb "github.com/karames/unilog/storage/database/inmem"
	sqlxrepos "github.com/karames/unilog/storage/database/sqlx"

	"github.com/jmoiron/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	cli := commandLine{conf: conf}
	if conf.Storage == "postgres" {
		db, err := database.Open(conf)
		errAndDie(err)
		defer func() { _ = db.Close() }()
		errAndDie(db.Ping())

		dbx := sqlx.NewDb(db, conf.Database.Engine)
		cli.db = db
		cli.studentSvc = student.NewService(sqlxrepos.NewStudentRepository(dbx), nil)
		cli.teacherSvc = teacher.NewService(sqlxrepos.NewTeacherRepository(dbx))
	} else {
		db, err := inmemdb.Open()
		errAndDie(err)
		cli.studentSvc = student.NewService(inmemdb.NewStudentRepository(db), nil)
		cli.teacherSvc = teacher.NewService(inmemdb.NewTeacherRepository(db))
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
