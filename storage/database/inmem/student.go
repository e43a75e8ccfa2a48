package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/karames/unilog/core/student"
)

type studentRepository struct {
	db *studentTable
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

// query returns students in insertion order; panel and roster rows keep it.
func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		students = append(students, clone(repo.db.table[id]))
	}
	return students
}

func clone(s *student.Student) student.Student {
	out := *s
	out.Courses = append(out.Courses[:0:0], s.Courses...)
	return out
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.table[id]; ok {
		return clone(s), nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) GetStudentByUsername(ctx context.Context, username string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, s := range repo.query() {
		if s.Username == username {
			return s, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	repo.db.table[s.ID] = &s
	repo.db.order = append(repo.db.order, s.ID)
	return clone(&s), nil
}

func (repo *studentRepository) UpdateCourseGrades(ctx context.Context, studentID, courseCode string, up student.GradeUpdate) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	s, ok := repo.db.table[studentID]
	if !ok {
		return student.ErrNotFound
	}
	for i, e := range s.Courses {
		if e.Code == courseCode {
			s.Courses[i].Midterm = up.Midterm
			s.Courses[i].Final = up.Final
			return nil
		}
	}
	return student.ErrNotFound
}
