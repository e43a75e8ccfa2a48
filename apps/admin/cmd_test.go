package main

import (
	"context"
	"testing"

	"github.com/karames/unilog/core"
	"github.com/karames/unilog/core/student"
	"github.com/karames/unilog/core/teacher"
	inmemdb "github.com/karames/unilog/storage/database/inmem"
)

func setup(t *testing.T) *commandLine {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cret"), nil }

	return &commandLine{
		conf:       &core.Config{Storage: "inmem"},
		studentSvc: student.NewService(inmemdb.NewStudentRepository(db), nil),
		teacherSvc: teacher.NewService(inmemdb.NewTeacherRepository(db)),
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "seed", args: []string{"seed"}},
		{name: "seed is idempotent", args: []string{"seed"}},
		{name: "addstudent: missing flags", args: []string{"addstudent", "-username", "240103001"}, wantErr: errHelp},
		{name: "addstudent", args: []string{"addstudent", "-username", "240103001", "-name", "Deniz Aydın", "-number", "240103001"}},
		{name: "addteacher: unknown course", args: []string{"addteacher", "-username", "x.ogretmen", "-name", "X", "-course", "YBS 999"}, wantErr: nil},
		{name: "addteacher", args: []string{"addteacher", "-username", "deniz.ogretmen", "-name", "Deniz Kaya", "-course", "YBS 301"}},
		{name: "migrate without database", args: []string{"migrate", "up"}, wantErr: errNoDatabase},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.name == "addteacher: unknown course":
				if err == nil {
					t.Error("cli.run() expected an error for unknown course")
				}
			case err != nil:
				t.Errorf("cli.run() unexpected error = %v", err)
			}
		})
	}
}

func Test_commandLine_addStudent(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "addstudent", "-username", "240103002", "-name", "Emre Kara", "-number", "240103002", "-email", "emre@test.dev"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}

	s, err := cli.studentSvc.GetByUsername(context.Background(), "240103002")
	if err != nil {
		t.Fatalf("GetByUsername() failed: %v", err)
	}
	if s.Password != "s3cret" {
		t.Errorf("password = %q, want %q", s.Password, "s3cret")
	}
	if len(s.Courses) != 7 {
		t.Fatalf("enrolled in %d courses, want 7", len(s.Courses))
	}
	for _, e := range s.Courses {
		if e.Midterm.Valid || e.Final.Valid {
			t.Errorf("course %s: new enrollments must be ungraded", e.Code)
		}
		if e.AbsenceLimit == 0 {
			t.Errorf("course %s: absence limit not seeded", e.Code)
		}
	}
}
