package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_studentApi_panel(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "student", "230103009", "1234")

	rec := app.request(t, http.MethodGet, "/v1/student/panel", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var panel StudentPanel
	decode(t, rec, &panel)

	assert.Equal(t, "Kaan Karameşe", panel.Student.Name)
	assert.Equal(t, "230103009", panel.Student.Number)
	require.Len(t, panel.Grades, 7)
	require.Len(t, panel.Attendance, 7)

	assert.Equal(t, 7, panel.Stats.TotalCourses)
	assert.Equal(t, 8+5+3+12+15+13+7, panel.Stats.TotalAbsence)
	assert.Greater(t, panel.Stats.GPA, 3.0)

	// YBS 301: midterm 85 final 88 -> 86.8 BA
	ops := panel.Grades[0]
	assert.Equal(t, "YBS 301", ops.Code)
	assert.InDelta(t, 86.8, ops.Average, 0.001)
	assert.Equal(t, "BA", string(ops.Letter))
	assert.Equal(t, "passed", string(ops.Status))
	assert.True(t, ops.MidAboveAvg)
	assert.True(t, ops.FinalAboveAvg)

	// IYU 325: absence 15 of 16 -> danger, 1 hour left
	var internship AttendanceCard
	for _, card := range panel.Attendance {
		if card.Code == "IYU 325" {
			internship = card
		}
	}
	assert.Equal(t, 15, internship.Absence)
	assert.Equal(t, 1, internship.Remaining)
	assert.Equal(t, "danger", string(internship.Risk))
}
