package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karames/unilog/core/student"
)

func rowNames(res RosterResponse) []string {
	out := make([]string, len(res.Rows))
	for i, r := range res.Rows {
		out[i] = r.Name
	}
	return out
}

func Test_teacherApi_panel(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "teacher", "mehmet.ogretmen", "teacher123")

	rec := app.request(t, http.MethodGet, "/v1/teacher/panel", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var panel TeacherPanel
	decode(t, rec, &panel)

	assert.Equal(t, "Mehmet Yılmaz", panel.Teacher.Name)
	assert.Equal(t, "YBS 305", panel.Course.Code)
	assert.Equal(t, "Nesneye Dayalı Programlama", panel.Course.Name)

	require.Len(t, panel.Roster.Rows, 3)
	assert.Equal(t, []string{"Kaan Karameşe", "Ahmet Polat", "Ayşe Yılmaz"}, rowNames(panel.Roster))
	assert.Equal(t, 3, panel.Roster.Stats.TotalStudents)
	assert.Equal(t, 3, panel.Roster.Stats.PassedCount)
	assert.Equal(t, 0, panel.Roster.Stats.FailedCount)
	assert.InDelta(t, (93.8+71.8+81.8)/3, panel.Roster.Stats.ClassAverage, 0.001)
	assert.False(t, panel.Roster.Sort.Active)
}

func Test_teacherApi_sortAndFilter(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "teacher", "mehmet.ogretmen", "teacher123")

	// load panel first; sort and filter act on its view
	rec := app.request(t, http.MethodGet, "/v1/teacher/panel", token)
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("sort ascending then toggle", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/teacher/roster/sort", token, SortRequest{Column: "average"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res RosterResponse
		decode(t, rec, &res)
		assert.Equal(t, []string{"Ahmet Polat", "Ayşe Yılmaz", "Kaan Karameşe"}, rowNames(res))
		assert.Equal(t, SortState{Column: "average", Ascending: true, Active: true}, res.Sort)
		assert.Equal(t, 3, res.Stats.TotalStudents)

		rec = app.request(t, http.MethodPost, "/v1/teacher/roster/sort", token, SortRequest{Column: "average"})
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &res)
		assert.Equal(t, []string{"Kaan Karameşe", "Ayşe Yılmaz", "Ahmet Polat"}, rowNames(res))
		assert.False(t, res.Sort.Ascending)
	})

	t.Run("invalid column is rejected", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/teacher/roster/sort", token, SortRequest{Column: "gpa"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("filter keeps the active sort", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/teacher/roster/filter", token, FilterRequest{Search: "a"})
		require.Equal(t, http.StatusOK, rec.Code)

		var res RosterResponse
		decode(t, rec, &res)
		// descending by average from the previous subtest
		assert.Equal(t, []string{"Kaan Karameşe", "Ayşe Yılmaz", "Ahmet Polat"}, rowNames(res))
		assert.Equal(t, "a", res.Search)
	})

	t.Run("filter by number then clear", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/teacher/roster/filter", token, FilterRequest{Search: "3010"})
		require.Equal(t, http.StatusOK, rec.Code)

		var res RosterResponse
		decode(t, rec, &res)
		assert.Equal(t, []string{"Ahmet Polat"}, rowNames(res))

		rec = app.request(t, http.MethodPost, "/v1/teacher/roster/filter", token, FilterRequest{Search: ""})
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &res)
		assert.Len(t, res.Rows, 3)
		assert.Empty(t, res.Search)
	})
}

func Test_teacherApi_saveGrades(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "teacher", "mehmet.ogretmen", "teacher123")

	rec := app.request(t, http.MethodGet, "/v1/teacher/panel", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var panel TeacherPanel
	decode(t, rec, &panel)
	require.Len(t, panel.Roster.Rows, 3)

	t.Run("valid batch updates all", func(t *testing.T) {
		rec := app.request(t, http.MethodPut, "/v1/teacher/grades", token, SaveGradesRequest{
			Grades: []student.GradeEntry{
				{StudentID: panel.Roster.Rows[0].StudentID, Midterm: 50, Final: 60},
				{StudentID: panel.Roster.Rows[1].StudentID, Midterm: 65, Final: 75},
			},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res student.BatchResult
		decode(t, rec, &res)
		assert.Equal(t, 2, res.Updated)
		assert.Equal(t, 0, res.Failed)

		// next panel load reflects the new scores
		rec = app.request(t, http.MethodGet, "/v1/teacher/panel", token)
		require.Equal(t, http.StatusOK, rec.Code)
		var reloaded TeacherPanel
		decode(t, rec, &reloaded)
		assert.InDelta(t, 56, reloaded.Roster.Rows[0].Metrics.Average, 0.001)
	})

	t.Run("partial failure reports summary", func(t *testing.T) {
		rec := app.request(t, http.MethodPut, "/v1/teacher/grades", token, SaveGradesRequest{
			Grades: []student.GradeEntry{
				{StudentID: panel.Roster.Rows[2].StudentID, Midterm: 80, Final: 90},
				{StudentID: "no-such-student", Midterm: 80, Final: 90},
			},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res student.BatchResult
		decode(t, rec, &res)
		assert.Equal(t, 1, res.Updated)
		assert.Equal(t, 1, res.Failed)
		require.Len(t, res.Failures, 1)
		assert.Equal(t, "no-such-student", res.Failures[0].StudentID)
	})

	t.Run("out-of-range score rejects the batch", func(t *testing.T) {
		rec := app.request(t, http.MethodPut, "/v1/teacher/grades", token, SaveGradesRequest{
			Grades: []student.GradeEntry{
				{StudentID: panel.Roster.Rows[0].StudentID, Midterm: 120, Final: 60},
			},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	})

	t.Run("empty batch is rejected", func(t *testing.T) {
		rec := app.request(t, http.MethodPut, "/v1/teacher/grades", token, SaveGradesRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_teacherApi_export(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "teacher", "mehmet.ogretmen", "teacher123")

	rec := app.request(t, http.MethodGet, "/v1/teacher/roster/export", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, rec.Body.Len())
}
