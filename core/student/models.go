package student

import (
	"encoding/json"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/karames/unilog/core"
	"github.com/karames/unilog/core/course"
)

// Student's ID is opaque and assigned by the store: a uuid in the demo
// store, a database key in the persisted one. Code must never assume a
// numeric type.
type Student struct {
	ID       string              `json:"id"`
	Username string              `json:"username"`
	Password string              `json:"-"`
	Name     string              `json:"name"`
	Number   string              `json:"number"`
	Email    string              `json:"email,omitempty"`
	Courses  []course.Enrollment `json:"courses"`
}

// Enrollment returns the student's enrollment for the given course code.
func (s *Student) Enrollment(code string) (course.Enrollment, bool) {
	for _, e := range s.Courses {
		if e.Code == code {
			return e, true
		}
	}
	return course.Enrollment{}, false
}

// TotalAbsence sums absence hours across all enrollments.
func (s *Student) TotalAbsence() int {
	var total int
	for _, e := range s.Courses {
		total += e.Absence
	}
	return total
}

// Score is a midterm/final value as submitted by a client. Non-numeric
// input coerces to 0 ("ungraded") before range-checking, matching the
// original form behavior.
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*s = Score(v)
	case string:
		f, err := strconv.ParseFloat(core.CleanString(v), 64)
		if err != nil {
			f = 0
		}
		*s = Score(f)
	default: // null, bool, object...
		*s = 0
	}
	return nil
}

// GradeEntry is one student's new scores within a save batch.
type GradeEntry struct {
	StudentID string `json:"student_id" validate:"required"`
	Midterm   Score  `json:"midterm" validate:"min=0,max=100"`
	Final     Score  `json:"final" validate:"min=0,max=100"`
}

func (ge GradeEntry) Validate(validate *validator.Validate) error {
	return validate.Struct(ge)
}

// GradeUpdate carries the fields merged into the matching enrollment by
// the store; all other enrollment fields are left untouched.
type GradeUpdate struct {
	Midterm null.Float64 `json:"midterm"`
	Final   null.Float64 `json:"final"`
}

func (ge GradeEntry) Update() GradeUpdate {
	return GradeUpdate{
		Midterm: null.Float64From(float64(ge.Midterm)),
		Final:   null.Float64From(float64(ge.Final)),
	}
}
