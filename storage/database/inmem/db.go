package inmemdb

import (
	"sync"

	"github.com/karames/unilog/core/student"
	"github.com/karames/unilog/core/teacher"
)

type (
	DB struct {
		student *studentTable
		teacher *teacherTable
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*student.Student
		order []string
	}

	teacherTable struct {
		sync.RWMutex
		table map[string]*teacher.Teacher
		order []string
	}
)

func Open() (*DB, error) {
	db := &DB{
		student: &studentTable{table: make(map[string]*student.Student)},
		teacher: &teacherTable{table: make(map[string]*teacher.Teacher)},
	}
	return db, nil
}
