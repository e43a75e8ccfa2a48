// Package seed loads the demo roster used by the in-memory store and by
// fresh database installs.
package seed

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/karames/unilog/core/course"
	"github.com/karames/unilog/core/student"
	"github.com/karames/unilog/core/teacher"
)

func enrollment(code string, midterm, final, classAvgMid, classAvgFinal float64, absence int) course.Enrollment {
	c, _ := course.Find(code)
	return course.Enrollment{
		Code:          c.Code,
		Name:          c.Name,
		Credit:        c.Credit,
		ECTS:          c.ECTS,
		Midterm:       null.Float64From(midterm),
		Final:         null.Float64From(final),
		ClassAvgMid:   classAvgMid,
		ClassAvgFinal: classAvgFinal,
		Absence:       absence,
	}
}

// Students returns the demo students. Student numbers double as usernames.
func Students() []student.Student {
	return []student.Student{
		{
			Username: "230103009", Password: "1234", Name: "Kaan Karameşe", Number: "230103009",
			Courses: []course.Enrollment{
				enrollment("YBS 301", 85, 88, 72, 75, 8),
				enrollment("YBS 391", 78, 82, 70, 73, 5),
				enrollment("YBS 305", 92, 95, 75, 78, 3),
				enrollment("YBS 303", 88, 90, 73, 76, 12),
				enrollment("IYU 325", 95, 98, 80, 83, 15),
				enrollment("YBS 457", 90, 93, 76, 79, 13),
				enrollment("YBS 309", 82, 85, 71, 74, 7),
			},
		},
		{
			Username: "230103010", Password: "1234", Name: "Ahmet Polat", Number: "230103010",
			Courses: []course.Enrollment{
				enrollment("YBS 301", 75, 78, 72, 75, 18),
				enrollment("YBS 391", 82, 85, 70, 73, 10),
				enrollment("YBS 305", 70, 73, 75, 78, 19),
				enrollment("YBS 303", 78, 80, 73, 76, 15),
				enrollment("IYU 325", 88, 90, 80, 83, 8),
				enrollment("YBS 457", 85, 88, 76, 79, 13),
				enrollment("YBS 309", 73, 76, 71, 74, 14),
			},
		},
		{
			Username: "230103011", Password: "1234", Name: "Ayşe Yılmaz", Number: "230103011",
			Courses: []course.Enrollment{
				enrollment("YBS 301", 68, 72, 72, 75, 20),
				enrollment("YBS 391", 65, 70, 70, 73, 15),
				enrollment("YBS 305", 80, 83, 75, 78, 16),
				enrollment("YBS 303", 70, 74, 73, 76, 14),
				enrollment("IYU 325", 75, 78, 80, 83, 12),
				enrollment("YBS 457", 72, 75, 76, 79, 15),
				enrollment("YBS 309", 77, 80, 71, 74, 11),
			},
		},
	}
}

// Teachers returns the demo teachers, one per catalog course.
func Teachers() []teacher.Teacher {
	return []teacher.Teacher{
		{Username: "ahmet.ogretmen", Password: "teacher123", Name: "Ahmet Öztürk", Course: "YBS 301"},
		{Username: "zeynep.ogretmen", Password: "teacher123", Name: "Zeynep Arslan", Course: "YBS 391"},
		{Username: "mehmet.ogretmen", Password: "teacher123", Name: "Mehmet Yılmaz", Course: "YBS 305"},
		{Username: "ayse.ogretmen", Password: "teacher123", Name: "Ayşe Demir", Course: "YBS 303"},
		{Username: "can.ogretmen", Password: "teacher123", Name: "Can Kaya", Course: "IYU 325"},
		{Username: "elif.ogretmen", Password: "teacher123", Name: "Elif Şahin", Course: "YBS 457"},
		{Username: "ali.ogretmen", Password: "teacher123", Name: "Ali Çelik", Course: "YBS 309"},
	}
}

// Load inserts the demo data, skipping records whose username already
// exists so reruns are harmless.
func Load(ctx context.Context, studentSvc *student.Service, teacherSvc *teacher.Service) error {
	for _, s := range Students() {
		if _, err := studentSvc.GetByUsername(ctx, s.Username); err == nil {
			continue
		} else if !errors.Is(err, student.ErrNotFound) {
			return errors.Wrap(err, "checking student")
		}
		if _, err := studentSvc.Create(ctx, s); err != nil {
			return errors.Wrapf(err, "seeding student %s", s.Username)
		}
	}

	for _, t := range Teachers() {
		if _, err := teacherSvc.GetByUsername(ctx, t.Username); err == nil {
			continue
		} else if !errors.Is(err, teacher.ErrNotFound) {
			return errors.Wrap(err, "checking teacher")
		}
		if _, err := teacherSvc.Create(ctx, t); err != nil {
			return errors.Wrapf(err, "seeding teacher %s", t.Username)
		}
	}
	return nil
}
