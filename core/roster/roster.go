// Package roster projects stored students into the table a teacher works
// with: one derived row per enrolled student plus class-level stats, and a
// sortable/filterable view over those rows.
package roster

import (
	"github.com/karames/unilog/core/course"
	"github.com/karames/unilog/core/grading"
	"github.com/karames/unilog/core/student"
)

// Metrics are the derived columns of a roster row. They are computed at
// projection time and never stored.
type Metrics struct {
	Average           float64        `json:"average"`
	Letter            grading.Letter `json:"letter"`
	GPAPoints         float64        `json:"gpa_points"`
	Status            grading.Status `json:"status"`
	AbsencePercentage float64        `json:"absence_percentage"`
	Risk              grading.Risk   `json:"risk"`
}

type Row struct {
	StudentID  string            `json:"student_id"`
	Number     string            `json:"number"`
	Name       string            `json:"name"`
	Enrollment course.Enrollment `json:"enrollment"`
	Metrics    Metrics           `json:"metrics"`
}

// Stats summarizes a roster. Pending students count toward the total but
// toward neither passed nor failed.
type Stats struct {
	TotalStudents int     `json:"total_students"`
	ClassAverage  float64 `json:"class_average"`
	PassedCount   int     `json:"passed_count"`
	FailedCount   int     `json:"failed_count"`
}

type Roster struct {
	CourseCode string `json:"course_code"`
	Rows       []Row  `json:"rows"`
	Stats      Stats  `json:"stats"`
}

// Project builds the roster for one course from the full student list,
// keeping input order. Students not enrolled in the course are skipped.
// It is pure: projecting the same students twice yields the same roster.
func Project(courseCode string, students []student.Student) Roster {
	r := Roster{CourseCode: courseCode, Rows: []Row{}}

	var sum float64
	for _, s := range students {
		e, ok := s.Enrollment(courseCode)
		if !ok {
			continue
		}
		avg := grading.Average(e.Midterm, e.Final)
		letter := grading.Grade(avg)
		row := Row{
			StudentID:  s.ID,
			Number:     s.Number,
			Name:       s.Name,
			Enrollment: e,
			Metrics: Metrics{
				Average:           avg,
				Letter:            letter,
				GPAPoints:         letter.Points(),
				Status:            grading.StatusOf(avg),
				AbsencePercentage: grading.AbsencePercentage(e),
				Risk:              grading.RiskOf(e),
			},
		}
		r.Rows = append(r.Rows, row)

		sum += avg
		switch row.Metrics.Status {
		case grading.StatusPassed:
			r.Stats.PassedCount++
		case grading.StatusFailed:
			r.Stats.FailedCount++
		}
	}

	r.Stats.TotalStudents = len(r.Rows)
	if r.Stats.TotalStudents > 0 {
		r.Stats.ClassAverage = sum / float64(r.Stats.TotalStudents)
	}
	return r
}
