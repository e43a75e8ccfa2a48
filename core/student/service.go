package student

import (
	"context"
	"fmt"
	"net/mail"
	"sync"

	"github.com/pkg/errors"

	"github.com/karames/unilog/core"
	"github.com/karames/unilog/core/grading"
)

var (
	// ErrNotFound is returned when a requested student does not exist.
	ErrNotFound = errors.New("student not found")
)

type Repository interface {
	QueryAllStudents(ctx context.Context) ([]Student, error)
	GetStudentByID(ctx context.Context, id string) (Student, error)
	GetStudentByUsername(ctx context.Context, username string) (Student, error)
	CreateStudent(ctx context.Context, s Student) (Student, error)
	UpdateCourseGrades(ctx context.Context, studentID, courseCode string, up GradeUpdate) error
}

type Service struct {
	repo    Repository
	mailSvc core.EmailService
}

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) GetByUsername(ctx context.Context, username string) (Student, error) {
	return svc.repo.GetStudentByUsername(ctx, username)
}

// Create stores a new student, seeding each enrollment's absence limit
// from its ECTS when the caller did not provide one.
func (svc *Service) Create(ctx context.Context, s Student) (Student, error) {
	for i, e := range s.Courses {
		if e.AbsenceLimit == 0 {
			s.Courses[i].AbsenceLimit = grading.AbsenceLimit(e.ECTS)
		}
	}
	return svc.repo.CreateStudent(ctx, s)
}

// EntryFailure records a single student whose update could not be stored.
type EntryFailure struct {
	StudentID string `json:"student_id"`
	Reason    string `json:"reason"`
}

// BatchResult summarizes a grade save batch. A batch with failures is
// not rolled back; entries that went through stay written.
type BatchResult struct {
	Updated  int            `json:"updated"`
	Failed   int            `json:"failed"`
	Failures []EntryFailure `json:"failures,omitempty"`
}

// SaveGrades validates then stores a batch of score updates for one course.
// Any out-of-range score aborts the whole batch before a single write;
// store errors after that point only fail their own entry.
func (svc *Service) SaveGrades(ctx context.Context, courseCode string, entries []GradeEntry) (BatchResult, error) {
	var res BatchResult

	var flds []core.FieldError
	for _, e := range entries {
		if e.Midterm < 0 || e.Midterm > 100 {
			flds = append(flds, core.FieldError{Field: "midterm", Error: fmt.Sprintf("student %s: midterm must be between 0 and 100", e.StudentID)})
		}
		if e.Final < 0 || e.Final > 100 {
			flds = append(flds, core.FieldError{Field: "final", Error: fmt.Sprintf("student %s: final must be between 0 and 100", e.StudentID)})
		}
	}
	if len(flds) > 0 {
		return res, core.NewValidationError(errors.New("scores out of range"), flds...)
	}

	type outcome struct {
		studentID string
		err       error
	}
	outs := make(chan outcome, len(entries))

	var wg sync.WaitGroup
	for _, e := range entries {
		wg.Add(1)
		go func(e GradeEntry) {
			defer wg.Done()
			err := svc.repo.UpdateCourseGrades(ctx, e.StudentID, courseCode, e.Update())
			outs <- outcome{studentID: e.StudentID, err: err}
		}(e)
	}
	wg.Wait()
	close(outs)

	var updated []string
	for out := range outs {
		if out.err != nil {
			res.Failed++
			res.Failures = append(res.Failures, EntryFailure{StudentID: out.studentID, Reason: out.err.Error()})
			continue
		}
		res.Updated++
		updated = append(updated, out.studentID)
	}

	svc.notifyGradesUpdated(ctx, courseCode, updated)
	return res, nil
}

// notifyGradesUpdated emails students whose scores changed. Delivery is
// best-effort and never fails the batch.
func (svc *Service) notifyGradesUpdated(ctx context.Context, courseCode string, studentIDs []string) {
	if svc.mailSvc == nil {
		return
	}
	var msgs []*core.EmailMessage
	for _, id := range studentIDs {
		s, err := svc.repo.GetStudentByID(ctx, id)
		if err != nil || s.Email == "" {
			continue
		}
		msgs = append(msgs, &core.EmailMessage{
			To:      []mail.Address{{Name: s.Name, Address: s.Email}},
			Subject: fmt.Sprintf("Grades updated for %s", courseCode),
			BodyStr: fmt.Sprintf("Hi %s,\n\nYour %s scores were updated. Log in to your panel to review them.", s.Name, courseCode),
		})
	}
	if len(msgs) > 0 {
		svc.mailSvc.SendMessages(msgs...)
	}
}
