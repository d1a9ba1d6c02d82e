package enrollment

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/dccampos/secretaria/core"
)

// Application review states. Transitions are forward-only:
// pending -> approved or pending -> rejected, never back.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var (
	// errors
	ErrNotFound = errors.New("application not found")
	ErrReviewed = errors.New("application has already been reviewed")
)

// Application is one enrollment request. Everything but Status is immutable
// once submitted; the review transition only ever flips Status.
type Application struct {
	ID             string    `json:"id" db:"id"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	Email          string    `json:"email" db:"email"`
	Phone          string    `json:"phone" db:"phone"`
	BirthDate      string    `json:"birth_date" db:"birth_date"`
	Document       string    `json:"document" db:"document"`
	ZipCode        string    `json:"zip_code" db:"zip_code"`
	Street         string    `json:"street" db:"street"`
	Number         string    `json:"number" db:"number"`
	District       string    `json:"district" db:"district"`
	City           string    `json:"city" db:"city"`
	State          string    `json:"state" db:"state"`
	EducationLevel string    `json:"education_level" db:"education_level"`
	LastSchool     string    `json:"last_school" db:"last_school"`
	Motivation     string    `json:"motivation" db:"motivation"`
	PhotoURL       string    `json:"photo_url" db:"photo_url"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"` // UTC
}

// FullName is the roster display name composed from the application.
func (a Application) FullName() string {
	return a.FirstName + " " + a.LastName
}

func (a Application) IsPending() bool {
	return a.Status == StatusPending
}

// NewApplication is the public enrollment form payload.
type NewApplication struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	BirthDate      string `json:"birth_date" validate:"required"`
	Document       string `json:"document" validate:"required,document"`
	ZipCode        string `json:"zip_code" validate:"required,zipcode"`
	Street         string `json:"street" validate:"required"`
	Number         string `json:"number" validate:"required"`
	District       string `json:"district" validate:"required"`
	City           string `json:"city" validate:"required"`
	State          string `json:"state" validate:"required,len=2"`
	EducationLevel string `json:"education_level" validate:"required"`
	LastSchool     string `json:"last_school"`
	Motivation     string `json:"motivation"`
	PhotoURL       string `json:"photo_url" validate:"omitempty,url"`
}

func (na *NewApplication) Clean() {
	na.FirstName = core.CleanString(na.FirstName)
	na.LastName = core.CleanString(na.LastName)
	na.Email = core.CleanString(na.Email, true /* lower */)
	na.Phone = core.CleanString(na.Phone)
	na.Document = core.CleanString(na.Document)
	na.State = core.CleanString(na.State, true)
}

func (na *NewApplication) Validate(validate *validator.Validate) error {
	na.Clean()
	return validate.Struct(na)
}

type QueryFilter struct {
	Status string `query:"status"`
}

type Repository interface {
	CreateApplication(ctx context.Context, app Application) (Application, error)
	GetApplicationByID(ctx context.Context, id string) (Application, error)
	// FilterApplications returns applications matching the filter, newest first.
	FilterApplications(ctx context.Context, filter QueryFilter) ([]Application, error)
	CountApplicationsByStatus(ctx context.Context, status string) (int, error)
	UpdateApplicationStatus(ctx context.Context, id, status string) error
}
