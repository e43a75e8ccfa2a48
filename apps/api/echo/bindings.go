package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/karames/unilog/core/student"
)

type LoginRequest struct {
	Role     string `json:"role" validate:"required,oneof=student teacher"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (lr LoginRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(lr)
}

type LoginResponse struct {
	Token  string `json:"token"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Course string `json:"course,omitempty"`
}

type SortRequest struct {
	Column string `json:"column" validate:"required,oneof=number name midterm final average letter absence"`
}

func (sr SortRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(sr)
}

// FilterRequest narrows the roster; an empty search clears the filter.
type FilterRequest struct {
	Search string `json:"search"`
}

type SaveGradesRequest struct {
	Grades []student.GradeEntry `json:"grades" validate:"required,min=1,dive"`
}

func (sgr SaveGradesRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(sgr)
}

type SuccessResponse struct {
	Success string `json:"success"`
}
