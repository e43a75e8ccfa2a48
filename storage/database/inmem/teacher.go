package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/karames/unilog/core/teacher"
)

type teacherRepository struct {
	db *teacherTable
}

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db.teacher}
}

func (repo *teacherRepository) QueryAllTeachers(ctx context.Context) ([]teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	teachers := make([]teacher.Teacher, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		teachers = append(teachers, *repo.db.table[id])
	}
	return teachers, nil
}

func (repo *teacherRepository) GetTeacherByID(ctx context.Context, id string) (teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if t, ok := repo.db.table[id]; ok {
		return *t, nil
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) GetTeacherByUsername(ctx context.Context, username string) (teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, id := range repo.db.order {
		if t := repo.db.table[id]; t.Username == username {
			return *t, nil
		}
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, t teacher.Teacher) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	repo.db.table[t.ID] = &t
	repo.db.order = append(repo.db.order, t.ID)
	return t, nil
}
