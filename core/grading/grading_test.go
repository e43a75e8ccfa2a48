package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/karames/unilog/core/course"
)

func score(v float64) null.Float64 { return null.Float64From(v) }

func TestAbsenceLimit(t *testing.T) {
	tests := []struct {
		ects int
		want int
	}{
		{ects: 5, want: 21}, // floor(5*14*0.3)
		{ects: 4, want: 16}, // floor(16.8)
		{ects: 3, want: 12},
		{ects: 0, want: 0},
		{ects: -1, want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AbsenceLimit(tt.ects), "ects=%d", tt.ects)
	}
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name    string
		midterm null.Float64
		final   null.Float64
		want    float64
	}{
		{name: "both set", midterm: score(85), final: score(88), want: 86.8},
		{name: "zero midterm is ungraded", midterm: score(0), final: score(88), want: 0},
		{name: "unset midterm is ungraded", midterm: null.Float64{}, final: score(88), want: 0},
		{name: "zero final is ungraded", midterm: score(85), final: score(0), want: 0},
		{name: "both unset", midterm: null.Float64{}, final: null.Float64{}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Average(tt.midterm, tt.final), 1e-9)
		})
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		average float64
		want    Letter
	}{
		{90, AA},
		{89.99, BA},
		{85, BA},
		{75, BB},
		{71.6, CB},
		{70, CB},
		{60, CC},
		{55, DC},
		{50, DD},
		{40, FD},
		{39.99, FF},
		{0.01, FF},
		{0, NA},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.average), "average=%v", tt.average)
	}
}

func TestLetterPoints(t *testing.T) {
	assert.Equal(t, 4.00, AA.Points())
	assert.Equal(t, 3.50, BA.Points())
	assert.Equal(t, 2.50, CB.Points())
	assert.Equal(t, 0.00, FF.Points())
	assert.Equal(t, 0.00, NA.Points())
}

func TestLetterRank(t *testing.T) {
	// best-to-worst, not lexical: BA outranks BB even though "BA" < "BB"
	assert.Less(t, AA.Rank(), BA.Rank())
	assert.Less(t, BA.Rank(), BB.Rank())
	assert.Less(t, FF.Rank(), NA.Rank())
	assert.Equal(t, len(letterOrder), Letter("XX").Rank())
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusPending, StatusOf(0))
	assert.Equal(t, StatusPassed, StatusOf(50))
	assert.Equal(t, StatusPassed, StatusOf(86.8))
	assert.Equal(t, StatusFailed, StatusOf(49.99))
	assert.Equal(t, StatusFailed, StatusOf(1))
}

func TestGPA(t *testing.T) {
	t.Run("no enrollments", func(t *testing.T) {
		assert.Equal(t, float64(0), GPA(nil))
	})

	t.Run("single course", func(t *testing.T) {
		// average 86.8 -> BA -> 3.5; one course, so GPA == points
		es := []course.Enrollment{
			{Code: "YBS 301", ECTS: 5, Midterm: score(85), Final: score(88)},
		}
		assert.InDelta(t, 3.5, GPA(es), 1e-9)
	})

	t.Run("end to end scenario", func(t *testing.T) {
		// midterm=70, final=74, ects=4 -> average=71.6 -> CB -> 2.5 -> passed
		e := course.Enrollment{Code: "YBS 391", ECTS: 4, Midterm: score(70), Final: score(74)}
		avg := Average(e.Midterm, e.Final)
		assert.InDelta(t, 71.6, avg, 1e-9)
		assert.Equal(t, CB, Grade(avg))
		assert.Equal(t, 2.5, Grade(avg).Points())
		assert.Equal(t, StatusPassed, StatusOf(avg))
		assert.InDelta(t, 2.5, GPA([]course.Enrollment{e}), 1e-9)
	})

	t.Run("weight fallbacks", func(t *testing.T) {
		// no ects: credit; neither: 3
		byCredit := course.Enrollment{Credit: 2, Midterm: score(90), Final: score(90)}
		assert.InDelta(t, 4.0, GPA([]course.Enrollment{byCredit}), 1e-9)
		malformed := course.Enrollment{Midterm: score(90), Final: score(90)}
		assert.InDelta(t, 4.0, GPA([]course.Enrollment{malformed}), 1e-9)
	})
}

func TestAbsenceRisk(t *testing.T) {
	tests := []struct {
		name    string
		absence int
		limit   int
		wantPct float64
		want    Risk
	}{
		{name: "safe", absence: 8, limit: 21, wantPct: 38.095238095238095, want: RiskSafe},
		{name: "warning at 60%", absence: 13, limit: 21, wantPct: 61.904761904761905, want: RiskWarning},
		{name: "danger at 85%", absence: 18, limit: 21, wantPct: 85.71428571428571, want: RiskDanger},
		{name: "at the limit", absence: 16, limit: 16, wantPct: 100, want: RiskDanger},
		{name: "zero limit no absence", absence: 0, limit: 0, wantPct: 0, want: RiskSafe},
		{name: "zero limit with absence", absence: 1, limit: 0, wantPct: 100, want: RiskDanger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := course.Enrollment{Absence: tt.absence, AbsenceLimit: tt.limit}
			assert.InDelta(t, tt.wantPct, AbsencePercentage(e), 1e-9)
			assert.Equal(t, tt.want, RiskOf(e))
		})
	}
}
