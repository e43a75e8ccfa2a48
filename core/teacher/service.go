package teacher

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a requested teacher does not exist.
	ErrNotFound = errors.New("teacher not found")
)

type Repository interface {
	QueryAllTeachers(ctx context.Context) ([]Teacher, error)
	GetTeacherByID(ctx context.Context, id string) (Teacher, error)
	GetTeacherByUsername(ctx context.Context, username string) (Teacher, error)
	CreateTeacher(ctx context.Context, t Teacher) (Teacher, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Teacher, error) {
	return svc.repo.QueryAllTeachers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(ctx, id)
}

func (svc *Service) GetByUsername(ctx context.Context, username string) (Teacher, error) {
	return svc.repo.GetTeacherByUsername(ctx, username)
}

func (svc *Service) Create(ctx context.Context, t Teacher) (Teacher, error) {
	return svc.repo.CreateTeacher(ctx, t)
}
