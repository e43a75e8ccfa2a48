package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/karames/unilog/core/teacher"
)

type teacherRepository struct {
	db *sqlx.DB
}

func NewTeacherRepository(db *sqlx.DB) teacher.Repository {
	return &teacherRepository{db: db}
}

func (repo *teacherRepository) QueryAllTeachers(ctx context.Context) ([]teacher.Teacher, error) {
	var teachers []teacher.Teacher
	q := `SELECT id, username, password, name, course FROM teacher ORDER BY name`
	if err := repo.db.SelectContext(ctx, &teachers, q); err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	return teachers, nil
}

func (repo *teacherRepository) GetTeacherByID(ctx context.Context, id string) (teacher.Teacher, error) {
	return repo.get(ctx, `SELECT id, username, password, name, course FROM teacher WHERE id = $1`, id)
}

func (repo *teacherRepository) GetTeacherByUsername(ctx context.Context, username string) (teacher.Teacher, error) {
	return repo.get(ctx, `SELECT id, username, password, name, course FROM teacher WHERE username = $1`, username)
}

func (repo *teacherRepository) get(ctx context.Context, q string, arg interface{}) (teacher.Teacher, error) {
	var t teacher.Teacher
	if err := repo.db.GetContext(ctx, &t, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, errors.Wrap(err, "getting teacher")
	}
	return t, nil
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, t teacher.Teacher) (teacher.Teacher, error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	q := `INSERT INTO teacher (id, username, password, name, course) VALUES ($1, $2, $3, $4, $5)`
	if _, err := repo.db.ExecContext(ctx, q, t.ID, t.Username, t.Password, t.Name, t.Course); err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "creating teacher")
	}
	return t, nil
}
