package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/pressly/goose/v3"
	"golang.org/x/term"

	"github.com/karames/unilog/core"
	"github.com/karames/unilog/core/course"
	"github.com/karames/unilog/core/student"
	"github.com/karames/unilog/core/teacher"
	appfs "github.com/karames/unilog/fs"
	"github.com/karames/unilog/storage/database/seed"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	gooseRunFunc     = goose.Run        // mockable

	errHelp       = errors.New("help provided")
	errNoDatabase = errors.New("command requires postgres storage")
)

type commandLine struct {
	conf       *core.Config
	db         *sql.DB // nil unless postgres storage
	studentSvc *student.Service
	teacherSvc *teacher.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed - load the demo students and teachers")
	fmt.Println("  addstudent -username USERNAME -name NAME -number NUMBER [-email EMAIL] - add a student enrolled in the full catalog")
	fmt.Println("  addteacher -username USERNAME -name NAME -course CODE - add a teacher for a catalog course")
	fmt.Println("  migrate COMMAND - run a goose migration command (up, down, status, ...)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	addStudentUname := addStudentCmd.String("username", "", "The student's login username. The password will be prompted next.")
	addStudentName := addStudentCmd.String("name", "", "The student's full name.")
	addStudentNumber := addStudentCmd.String("number", "", "The student's number.")
	addStudentEmail := addStudentCmd.String("email", "", "The student's email address (optional).")

	addTeacherCmd := flag.NewFlagSet("addteacher", flag.ExitOnError)
	addTeacherUname := addTeacherCmd.String("username", "", "The teacher's login username. The password will be prompted next.")
	addTeacherName := addTeacherCmd.String("name", "", "The teacher's full name.")
	addTeacherCourse := addTeacherCmd.String("course", "", "The catalog course code taught.")

	switch args[1] {
	case "seed":
		return seed.Load(context.Background(), cli.studentSvc, cli.teacherSvc)

	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStudentUname == "" || *addStudentName == "" || *addStudentNumber == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		return cli.addStudent(*addStudentUname, *addStudentName, *addStudentNumber, *addStudentEmail, pwd)

	case "addteacher":
		if err := addTeacherCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addTeacherUname == "" || *addTeacherName == "" || *addTeacherCourse == "" {
			addTeacherCmd.Usage()
			return errHelp
		}
		if _, ok := course.Find(*addTeacherCourse); !ok {
			return fmt.Errorf("unknown course code %q", *addTeacherCourse)
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		return cli.addTeacher(*addTeacherUname, *addTeacherName, *addTeacherCourse, pwd)

	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		if cli.db == nil {
			return errNoDatabase
		}
		goose.SetBaseFS(appfs.FS)
		if err := goose.SetDialect("postgres"); err != nil {
			return err
		}
		return gooseRunFunc(args[2], cli.db, "migrations", args[3:]...)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errHelp
	}
	return string(pwd), nil
}

// addStudent enrolls the new student in every catalog course with no
// grades yet; absence limits are seeded from ECTS on create.
func (cli *commandLine) addStudent(uname, name, number, email, pwd string) error {
	catalog := course.Catalog()
	enrollments := make([]course.Enrollment, 0, len(catalog))
	for _, c := range catalog {
		enrollments = append(enrollments, course.Enrollment{
			Code:   c.Code,
			Name:   c.Name,
			Credit: c.Credit,
			ECTS:   c.ECTS,
		})
	}

	_, err := cli.studentSvc.Create(context.Background(), student.Student{
		Username: uname,
		Password: pwd,
		Name:     name,
		Number:   number,
		Email:    email,
		Courses:  enrollments,
	})
	return err
}

func (cli *commandLine) addTeacher(uname, name, courseCode, pwd string) error {
	_, err := cli.teacherSvc.Create(context.Background(), teacher.Teacher{
		Username: uname,
		Password: pwd,
		Name:     name,
		Course:   courseCode,
	})
	return err
}
