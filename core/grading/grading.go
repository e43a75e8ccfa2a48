package grading

import (
	"github.com/volatiletech/null/v8"

	"github.com/karames/unilog/core/course"
)

const (
	termWeeks        = 14
	absenceAllowance = 0.3 // 70% attendance rule

	midtermWeight = 0.4
	finalWeight   = 0.6

	passMark = 50

	// fallback weight for malformed enrollments missing both ects and credit
	defaultWeight = 3
)

// Letter is a categorical grade mapped from a numeric average.
type Letter string

const (
	AA Letter = "AA"
	BA Letter = "BA"
	BB Letter = "BB"
	CB Letter = "CB"
	CC Letter = "CC"
	DC Letter = "DC"
	DD Letter = "DD"
	FD Letter = "FD"
	FF Letter = "FF"
	NA Letter = "NA"
)

// letterOrder ranks letters best to worst; table sorting uses this, never
// lexical order.
var letterOrder = []Letter{AA, BA, BB, CB, CC, DC, DD, FD, FF, NA}

var letterRanks = func() map[Letter]int {
	ranks := make(map[Letter]int, len(letterOrder))
	for i, l := range letterOrder {
		ranks[l] = i
	}
	return ranks
}()

// Rank returns the letter's position in the best-to-worst order.
func (l Letter) Rank() int {
	if r, ok := letterRanks[l]; ok {
		return r
	}
	return len(letterOrder)
}

// gradeSteps; evaluated top-down, first match wins.
var gradeSteps = []struct {
	min    float64
	letter Letter
	points float64
}{
	{90, AA, 4.00},
	{85, BA, 3.50},
	{75, BB, 3.00},
	{70, CB, 2.50},
	{60, CC, 2.00},
	{55, DC, 1.50},
	{50, DD, 1.00},
	{40, FD, 0.50},
}

// Points returns the grade points on the 4.00 scale.
func (l Letter) Points() float64 {
	for _, s := range gradeSteps {
		if s.letter == l {
			return s.points
		}
	}
	return 0 // FF, NA
}

// Status is the pass/fail classification of a course average.
type Status string

const (
	StatusPending Status = "pending"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
)

// Risk classifies how close a student is to the absence limit.
type Risk string

const (
	RiskSafe    Risk = "safe"
	RiskWarning Risk = "warning"
	RiskDanger  Risk = "danger"
)

// AbsenceLimit derives the permitted absence hours from ECTS: a 14-week
// term with contact hours proportional to ECTS, of which 30% may be missed.
func AbsenceLimit(ects int) int {
	if ects <= 0 {
		return 0
	}
	totalHours := ects * termWeeks
	return int(float64(totalHours) * absenceAllowance)
}

// Average computes the weighted course average (midterm 40%, final 60%).
//
// It returns 0 whenever either component is unset OR zero: a zero score is
// indistinguishable from "not graded yet". This mirrors the product's
// long-standing behavior and is a documented ambiguity, not a bug to fix
// here.
func Average(midterm, final null.Float64) float64 {
	if !midterm.Valid || midterm.Float64 == 0 || !final.Valid || final.Float64 == 0 {
		return 0
	}
	return midterm.Float64*midtermWeight + final.Float64*finalWeight
}

// Grade maps an average to its letter; 0 (or less) means not yet graded.
func Grade(average float64) Letter {
	for _, s := range gradeSteps {
		if average >= s.min {
			return s.letter
		}
	}
	if average > 0 {
		return FF
	}
	return NA
}

// StatusOf classifies an average: 0 is pending, the pass mark is 50.
func StatusOf(average float64) Status {
	switch {
	case average == 0:
		return StatusPending
	case average >= passMark:
		return StatusPassed
	default:
		return StatusFailed
	}
}

func weight(e course.Enrollment) int {
	switch {
	case e.ECTS > 0:
		return e.ECTS
	case e.Credit > 0:
		return e.Credit
	default:
		return defaultWeight
	}
}

// CourseGPA returns the enrollment's weighted grade points.
func CourseGPA(e course.Enrollment) float64 {
	return Grade(Average(e.Midterm, e.Final)).Points() * float64(weight(e))
}

// GPA is the credit-weighted mean of per-course grade points, 0 when the
// student has no enrollments.
func GPA(enrollments []course.Enrollment) float64 {
	var points float64
	var weights int
	for _, e := range enrollments {
		points += CourseGPA(e)
		weights += weight(e)
	}
	if weights == 0 {
		return 0
	}
	return points / float64(weights)
}

// AbsencePercentage returns how much of the absence limit has been used.
// A limit of 0 is malformed data; guard rather than divide by zero.
func AbsencePercentage(e course.Enrollment) float64 {
	if e.AbsenceLimit <= 0 {
		if e.Absence > 0 {
			return 100
		}
		return 0
	}
	return float64(e.Absence) / float64(e.AbsenceLimit) * 100
}

// RiskOf classifies absence usage: danger from 85%, warning from 60%.
func RiskOf(e course.Enrollment) Risk {
	pct := AbsencePercentage(e)
	switch {
	case pct >= 85:
		return RiskDanger
	case pct >= 60:
		return RiskWarning
	default:
		return RiskSafe
	}
}
