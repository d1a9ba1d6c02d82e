package student

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound = errors.New("student not found")
)

// Student is one roster record. It is created exclusively by the admission
// transition; later edits come from the roster screens.
type Student struct {
	ID                  string    `json:"id" db:"id"`
	RegistrationCode    string    `json:"registration_code" db:"registration_code"`
	Name                string    `json:"name" db:"name"`
	Email               string    `json:"email" db:"email"`
	Document            string    `json:"document" db:"document"`
	PhotoURL            string    `json:"photo_url" db:"photo_url"`
	ClassGroup          string    `json:"class_group" db:"class_group"`
	IsActive            bool      `json:"is_active" db:"is_active"`
	OriginApplicationID string    `json:"origin_application_id" db:"origin_application_id"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"` // UTC
}

type Repository interface {
	// RegistrationCodeExists reports whether any roster record already holds
	// the candidate code.
	RegistrationCodeExists(ctx context.Context, code string) (bool, error)
	CreateStudent(ctx context.Context, stu Student) (Student, error)
	GetStudentByID(ctx context.Context, id string) (Student, error)
	// QueryAllStudents returns the roster ordered by CreatedAt descending.
	QueryAllStudents(ctx context.Context) ([]Student, error)
	CountStudents(ctx context.Context) (int, error)
}
