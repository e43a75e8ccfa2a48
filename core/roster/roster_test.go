package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/karames/unilog/core/course"
	"github.com/karames/unilog/core/grading"
	"github.com/karames/unilog/core/student"
)

const testCourse = "YBS 305"

func enrollment(mid, fin float64, absence int) course.Enrollment {
	e := course.Enrollment{Code: testCourse, Name: "Nesneye Dayalı Programlama", Credit: 3, ECTS: 5, Absence: absence, AbsenceLimit: 21}
	if mid > 0 {
		e.Midterm = null.Float64From(mid)
	}
	if fin > 0 {
		e.Final = null.Float64From(fin)
	}
	return e
}

func testStudents() []student.Student {
	return []student.Student{
		{ID: "s1", Number: "230103009", Name: "Kaan Karameşe", Courses: []course.Enrollment{enrollment(70, 80, 4)}},
		{ID: "s2", Number: "230103010", Name: "Ahmet Polat", Courses: []course.Enrollment{enrollment(40, 45, 20)}},
		{ID: "s3", Number: "230103011", Name: "Ayşe Yılmaz", Courses: []course.Enrollment{enrollment(0, 0, 0)}},
	}
}

func TestProject(t *testing.T) {
	r := Project(testCourse, testStudents())

	require.Len(t, r.Rows, 3)
	assert.Equal(t, testCourse, r.CourseCode)

	// rows keep store order
	assert.Equal(t, "s1", r.Rows[0].StudentID)
	assert.Equal(t, "s2", r.Rows[1].StudentID)
	assert.Equal(t, "s3", r.Rows[2].StudentID)

	assert.InDelta(t, 76, r.Rows[0].Metrics.Average, 0.001)
	assert.Equal(t, grading.BB, r.Rows[0].Metrics.Letter)
	assert.Equal(t, grading.StatusPassed, r.Rows[0].Metrics.Status)
	assert.Equal(t, grading.RiskSafe, r.Rows[0].Metrics.Risk)

	assert.InDelta(t, 43, r.Rows[1].Metrics.Average, 0.001)
	assert.Equal(t, grading.StatusFailed, r.Rows[1].Metrics.Status)
	assert.Equal(t, grading.RiskDanger, r.Rows[1].Metrics.Risk)

	assert.Zero(t, r.Rows[2].Metrics.Average)
	assert.Equal(t, grading.NA, r.Rows[2].Metrics.Letter)
	assert.Equal(t, grading.StatusPending, r.Rows[2].Metrics.Status)
}

func TestProjectStats(t *testing.T) {
	r := Project(testCourse, testStudents())

	assert.Equal(t, 3, r.Stats.TotalStudents)
	assert.Equal(t, 1, r.Stats.PassedCount)
	assert.Equal(t, 1, r.Stats.FailedCount, "pending counts toward neither passed nor failed")
	assert.InDelta(t, (76.0+43.0+0)/3, r.Stats.ClassAverage, 0.001)
}

func TestProjectSkipsUnenrolled(t *testing.T) {
	students := append(testStudents(), student.Student{
		ID: "s4", Number: "230103012", Name: "Mehmet Demir",
		Courses: []course.Enrollment{{Code: "YBS 301"}},
	})

	r := Project(testCourse, students)
	assert.Len(t, r.Rows, 3)
}

func TestProjectEmpty(t *testing.T) {
	r := Project(testCourse, nil)

	assert.NotNil(t, r.Rows)
	assert.Empty(t, r.Rows)
	assert.Zero(t, r.Stats.ClassAverage)
	assert.Zero(t, r.Stats.TotalStudents)
}

func TestProjectIdempotent(t *testing.T) {
	students := testStudents()
	first := Project(testCourse, students)
	second := Project(testCourse, students)
	assert.Equal(t, first, second)
}
