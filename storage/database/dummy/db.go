package dummydb

import (
	"sync"

	"github.com/dccampos/secretaria/core/attendance"
	"github.com/dccampos/secretaria/core/enrollment"
	"github.com/dccampos/secretaria/core/student"
)

type (
	// DB is an in-memory stand-in for the record store; used in tests and local dev.
	DB struct {
		tokens       *tokenTable
		applications *applicationTable
		students     *studentTable
	}

	tokenTable struct {
		sync.RWMutex
		table map[int]*attendance.Token
		seq   int
	}

	applicationTable struct {
		sync.RWMutex
		table map[string]*enrollment.Application
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*student.Student
	}
)

func Open() (*DB, error) {
	db := &DB{
		tokens:       &tokenTable{table: make(map[int]*attendance.Token)},
		applications: &applicationTable{table: make(map[string]*enrollment.Application)},
		students:     &studentTable{table: make(map[string]*student.Student)},
	}
	return db, nil
}
