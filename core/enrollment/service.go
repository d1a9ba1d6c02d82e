package enrollment

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dccampos/secretaria/core"
	"github.com/dccampos/secretaria/core/student"
)

// ErrPartialApproval means the roster record was created but the application
// status flip failed: the store holds a student while the application still
// reads pending. There is no cross-collection transaction to lean on and no
// compensating delete; the operator sees the error and the duplicate-looking
// entry until the status update is retried by hand.
var ErrPartialApproval = errors.New("student record created but application status update failed")

// Service runs the admission transition: it turns a pending application into
// an active roster record (approve) or a closed one (reject).
type Service struct {
	repo     Repository
	students student.Repository
	mailSvc  core.EmailService
	logger   core.Logger
	conf     *core.Config
}

func NewService(repo Repository, students student.Repository, mailSvc core.EmailService, logger core.Logger, conf *core.Config) *Service {
	return &Service{
		repo:     repo,
		students: students,
		mailSvc:  mailSvc,
		logger:   logger,
		conf:     conf,
	}
}

// Submit records a new application in pending state.
func (svc *Service) Submit(ctx context.Context, na NewApplication) (Application, error) {
	app := Application{
		ID:             uuid.New().String(),
		FirstName:      na.FirstName,
		LastName:       na.LastName,
		Email:          na.Email,
		Phone:          na.Phone,
		BirthDate:      na.BirthDate,
		Document:       na.Document,
		ZipCode:        na.ZipCode,
		Street:         na.Street,
		Number:         na.Number,
		District:       na.District,
		City:           na.City,
		State:          na.State,
		EducationLevel: na.EducationLevel,
		LastSchool:     na.LastSchool,
		Motivation:     na.Motivation,
		PhotoURL:       na.PhotoURL,
		Status:         StatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	return svc.repo.CreateApplication(ctx, app)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Application, error) {
	return svc.repo.GetApplicationByID(ctx, id)
}

// Pending returns applications awaiting review, newest first.
func (svc *Service) Pending(ctx context.Context) ([]Application, error) {
	return svc.repo.FilterApplications(ctx, QueryFilter{Status: StatusPending})
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Application, error) {
	return svc.repo.FilterApplications(ctx, filter)
}

func (svc *Service) CountByStatus(ctx context.Context, status string) (int, error) {
	return svc.repo.CountApplicationsByStatus(ctx, status)
}

// Approve runs the approve path of the admission transition:
//
//  1. obtain a unique registration code;
//  2. insert the roster record composed from the application;
//  3. flip the application status to approved;
//  4. queue the welcome email (fire-and-forget).
//
// Steps 1-3 have no cross-step atomicity. A failure in 1 or 2 aborts before
// the status flip, so the application stays pending and a retry is safe. A
// failure in 3 after 2 succeeded returns ErrPartialApproval (see its doc).
// Step 4 never fails the transition.
func (svc *Service) Approve(ctx context.Context, id string) (student.Student, error) {
	app, err := svc.repo.GetApplicationByID(ctx, id)
	if err != nil {
		return student.Student{}, err
	}
	if !app.IsPending() {
		return student.Student{}, core.NewValidationError(ErrReviewed)
	}

	code, err := NewRegistrationCode(ctx, svc.students.RegistrationCodeExists)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "generating registration code")
	}

	now := time.Now().UTC()
	stu := student.Student{
		ID:                  uuid.New().String(),
		RegistrationCode:    code,
		Name:                app.FullName(),
		Email:               app.Email,
		Document:            app.Document,
		PhotoURL:            app.PhotoURL,
		IsActive:            true,
		OriginApplicationID: app.ID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	stu, err = svc.students.CreateStudent(ctx, stu)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "creating roster record")
	}

	if err = svc.repo.UpdateApplicationStatus(ctx, app.ID, StatusApproved); err != nil {
		svc.logger.Error("application status update failed after roster insert", err, map[string]interface{}{
			"application_id": app.ID,
			"student_id":     stu.ID,
		})
		return stu, errors.Wrapf(ErrPartialApproval, "application %s: %v", app.ID, err)
	}

	approvalsTotal.Inc()
	svc.sendWelcomeEmail(app, code)
	return stu, nil
}

// Reject runs the reject path: a status flip and a courtesy email. No
// registration code, no roster insert.
func (svc *Service) Reject(ctx context.Context, id, justification string) (Application, error) {
	app, err := svc.repo.GetApplicationByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if !app.IsPending() {
		return Application{}, core.NewValidationError(ErrReviewed)
	}

	if err = svc.repo.UpdateApplicationStatus(ctx, app.ID, StatusRejected); err != nil {
		return Application{}, errors.Wrap(err, "updating application status")
	}
	app.Status = StatusRejected

	rejectionsTotal.Inc()
	svc.sendRejectionEmail(app, justification)
	return app, nil
}

func (svc *Service) sendWelcomeEmail(app Application, code string) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: app.FullName(), Address: app.Email}},
		Subject:      "Enrollment approved",
		TemplateName: "admission-approved",
		TemplateData: struct {
			Name             string
			RegistrationCode string
		}{app.FirstName, code},
	})
}

func (svc *Service) sendRejectionEmail(app Application, justification string) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: app.FullName(), Address: app.Email}},
		Subject:      "Enrollment reviewed",
		TemplateName: "admission-rejected",
		TemplateData: struct {
			Name          string
			Justification string
		}{app.FirstName, justification},
	})
}
