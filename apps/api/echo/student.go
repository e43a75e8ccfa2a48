package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/karames/unilog/core/course"
	"github.com/karames/unilog/core/grading"
	"github.com/karames/unilog/core/student"
)

type (
	// GradeRow is one course in the student panel's grades table.
	GradeRow struct {
		course.Enrollment
		Average       float64        `json:"average"`
		Letter        grading.Letter `json:"letter"`
		Points        float64        `json:"points"`
		Status        grading.Status `json:"status"`
		MidAboveAvg   bool           `json:"mid_above_avg"`
		FinalAboveAvg bool           `json:"final_above_avg"`
	}

	// AttendanceCard is one course in the student panel's attendance view.
	AttendanceCard struct {
		Code       string       `json:"code"`
		Name       string       `json:"name"`
		Absence    int          `json:"absence"`
		Limit      int          `json:"absence_limit"`
		Remaining  int          `json:"remaining"`
		Percentage float64      `json:"percentage"`
		Risk       grading.Risk `json:"risk"`
	}

	StudentStats struct {
		TotalCourses int     `json:"total_courses"`
		TotalAbsence int     `json:"total_absence"`
		GPA          float64 `json:"gpa"`
	}

	StudentPanel struct {
		Student    student.Student  `json:"student"`
		Grades     []GradeRow       `json:"grades"`
		Attendance []AttendanceCard `json:"attendance"`
		Stats      StudentStats     `json:"stats"`
	}
)

type studentApi struct {
	deps ServerDeps
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := studentApi{deps: deps}

	sg := g.Group("/student", jwt, roleMiddleware(roleStudent))
	sg.GET("/panel", api.panel)
}

func (api *studentApi) panel(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	s, err := api.deps.StudentSvc.GetByID(ctx.Request().Context(), claims.Subject)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student by ID")
	}

	return ctx.JSON(http.StatusOK, buildStudentPanel(s))
}

func buildStudentPanel(s student.Student) StudentPanel {
	panel := StudentPanel{
		Student:    s,
		Grades:     make([]GradeRow, 0, len(s.Courses)),
		Attendance: make([]AttendanceCard, 0, len(s.Courses)),
		Stats: StudentStats{
			TotalCourses: len(s.Courses),
			TotalAbsence: s.TotalAbsence(),
			GPA:          grading.GPA(s.Courses),
		},
	}

	for _, e := range s.Courses {
		avg := grading.Average(e.Midterm, e.Final)
		letter := grading.Grade(avg)
		panel.Grades = append(panel.Grades, GradeRow{
			Enrollment:    e,
			Average:       avg,
			Letter:        letter,
			Points:        letter.Points(),
			Status:        grading.StatusOf(avg),
			MidAboveAvg:   e.Midterm.Valid && e.Midterm.Float64 > e.ClassAvgMid,
			FinalAboveAvg: e.Final.Valid && e.Final.Float64 > e.ClassAvgFinal,
		})

		remaining := e.AbsenceLimit - e.Absence
		if remaining < 0 {
			remaining = 0
		}
		panel.Attendance = append(panel.Attendance, AttendanceCard{
			Code:       e.Code,
			Name:       e.Name,
			Absence:    e.Absence,
			Limit:      e.AbsenceLimit,
			Remaining:  remaining,
			Percentage: grading.AbsencePercentage(e),
			Risk:       grading.RiskOf(e),
		})
	}
	return panel
}
