package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"

	"github.com/karames/unilog/core/course"
	"github.com/karames/unilog/core/student"
)

type studentRow struct {
	ID       string         `db:"id"`
	Username string         `db:"username"`
	Password string         `db:"password"`
	Name     string         `db:"name"`
	Number   string         `db:"number"`
	Email    string         `db:"email"`
	Courses  types.JSONText `db:"courses"`
}

func (r studentRow) toStudent() (student.Student, error) {
	s := student.Student{
		ID:       r.ID,
		Username: r.Username,
		Password: r.Password,
		Name:     r.Name,
		Number:   r.Number,
		Email:    r.Email,
	}
	if err := json.Unmarshal(r.Courses, &s.Courses); err != nil {
		return student.Student{}, errors.Wrapf(err, "decoding courses for student %s", r.ID)
	}
	return s, nil
}

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	var rows []studentRow
	q := `SELECT id, username, password, name, number, email, courses FROM student ORDER BY number`
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}

	students := make([]student.Student, 0, len(rows))
	for _, r := range rows {
		s, err := r.toStudent()
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	return repo.get(ctx, `SELECT id, username, password, name, number, email, courses FROM student WHERE id = $1`, id)
}

func (repo *studentRepository) GetStudentByUsername(ctx context.Context, username string) (student.Student, error) {
	return repo.get(ctx, `SELECT id, username, password, name, number, email, courses FROM student WHERE username = $1`, username)
}

func (repo *studentRepository) get(ctx context.Context, q string, arg interface{}) (student.Student, error) {
	var r studentRow
	if err := repo.db.GetContext(ctx, &r, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return r.toStudent()
}

func (repo *studentRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	courses, err := json.Marshal(s.Courses)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "encoding courses")
	}

	q := `INSERT INTO student (id, username, password, name, number, email, courses)
		  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := repo.db.ExecContext(ctx, q, s.ID, s.Username, s.Password, s.Name, s.Number, s.Email, types.JSONText(courses)); err != nil {
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	return s, nil
}

// UpdateCourseGrades rewrites only the midterm/final of the matching
// enrollment inside the courses document, under row lock so concurrent
// batch writers cannot clobber each other's merges.
func (repo *studentRepository) UpdateCourseGrades(ctx context.Context, studentID, courseCode string, up student.GradeUpdate) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer func() { _ = tx.Rollback() }()

	var raw types.JSONText
	q := `SELECT courses FROM student WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &raw, q, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return student.ErrNotFound
		}
		return errors.Wrap(err, "locking student row")
	}

	var enrollments []course.Enrollment
	if err := json.Unmarshal(raw, &enrollments); err != nil {
		return errors.Wrapf(err, "decoding courses for student %s", studentID)
	}

	var found bool
	for i, e := range enrollments {
		if e.Code == courseCode {
			enrollments[i].Midterm = up.Midterm
			enrollments[i].Final = up.Final
			found = true
			break
		}
	}
	if !found {
		return student.ErrNotFound
	}

	courses, err := json.Marshal(enrollments)
	if err != nil {
		return errors.Wrap(err, "encoding courses")
	}
	if _, err := tx.ExecContext(ctx, `UPDATE student SET courses = $1 WHERE id = $2`, types.JSONText(courses), studentID); err != nil {
		return errors.Wrap(err, "updating student courses")
	}
	return errors.Wrap(tx.Commit(), "committing grade update")
}
