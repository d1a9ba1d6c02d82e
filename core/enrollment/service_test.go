package enrollment_test

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/dccampos/secretaria/core"
	"github.com/dccampos/secretaria/core/enrollment"
	"github.com/dccampos/secretaria/core/student"
	dummydb "github.com/dccampos/secretaria/storage/database/dummy"
)

type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

// recordingMailService captures queued messages without rendering or sending.
type recordingMailService struct {
	mu       sync.Mutex
	messages []*core.EmailMessage
}

func (svc *recordingMailService) SendMessages(messages ...*core.EmailMessage) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.messages = append(svc.messages, messages...)
}

func (svc *recordingMailService) sent() []*core.EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return append([]*core.EmailMessage(nil), svc.messages...)
}

// failingStatusRepo wraps a Repository, failing every status update.
type failingStatusRepo struct {
	enrollment.Repository
	err error
}

func (r failingStatusRepo) UpdateApplicationStatus(context.Context, string, string) error {
	return r.err
}

// failingCodeCheckRepo wraps a student.Repository, failing every uniqueness check.
type failingCodeCheckRepo struct {
	student.Repository
	err error
}

func (r failingCodeCheckRepo) RegistrationCodeExists(context.Context, string) (bool, error) {
	return false, r.err
}

type serviceEnv struct {
	svc     *enrollment.Service
	appRepo enrollment.Repository
	stuRepo student.Repository
	mailSvc *recordingMailService
}

func setup(t *testing.T) serviceEnv {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	appRepo := dummydb.NewEnrollmentRepository(db)
	stuRepo := dummydb.NewStudentRepository(db)
	mailSvc := &recordingMailService{}
	svc := enrollment.NewService(appRepo, stuRepo, mailSvc, testLogger{}, &core.Config{})
	return serviceEnv{svc: svc, appRepo: appRepo, stuRepo: stuRepo, mailSvc: mailSvc}
}

func seedApplication(t *testing.T, repo enrollment.Repository, id, status string) enrollment.Application {
	app, err := repo.CreateApplication(context.Background(), enrollment.Application{
		ID:        id,
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "ana.souza@example.com",
		Document:  "52998224725",
		Status:    status,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seedApplication() failed: %v", err)
	}
	return app
}

func TestServiceSubmit(t *testing.T) {
	env := setup(t)

	na := enrollment.NewApplication{
		FirstName:      "Ana",
		LastName:       "Souza",
		Email:          "ana.souza@example.com",
		Phone:          "11999990000",
		BirthDate:      "2004-03-15",
		Document:       "52998224725",
		ZipCode:        "01310-100",
		Street:         "Avenida Paulista",
		Number:         "100",
		District:       "Bela Vista",
		City:           "São Paulo",
		State:          "sp",
		EducationLevel: "high school",
	}
	app, err := env.svc.Submit(context.Background(), na)
	assert.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, enrollment.StatusPending, app.Status)
	assert.Equal(t, "Ana Souza", app.FullName())
	assert.False(t, app.CreatedAt.IsZero())

	pending, err := env.svc.Pending(context.Background())
	assert.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestServiceApprove(t *testing.T) {
	env := setup(t)
	app := seedApplication(t, env.appRepo, "app-1", enrollment.StatusPending)

	stu, err := env.svc.Approve(context.Background(), app.ID)
	assert.NoError(t, err)

	// roster record composed from the application
	assert.Regexp(t, regexp.MustCompile(`^\d{8}$`), stu.RegistrationCode)
	assert.True(t, stu.RegistrationCode[4:] == fmt.Sprint(time.Now().Year()))
	assert.Equal(t, "Ana Souza", stu.Name)
	assert.Equal(t, app.Email, stu.Email)
	assert.Equal(t, app.ID, stu.OriginApplicationID)
	assert.True(t, stu.IsActive)

	got, err := env.stuRepo.GetStudentByID(context.Background(), stu.ID)
	assert.NoError(t, err)
	assert.Equal(t, stu.RegistrationCode, got.RegistrationCode)

	updated, err := env.appRepo.GetApplicationByID(context.Background(), app.ID)
	assert.NoError(t, err)
	assert.Equal(t, enrollment.StatusApproved, updated.Status)

	if msgs := env.mailSvc.sent(); assert.Len(t, msgs, 1) {
		assert.Equal(t, "admission-approved", msgs[0].TemplateName)
		assert.Equal(t, app.Email, msgs[0].To[0].Address)
	}
}

func TestServiceApproveAlreadyReviewed(t *testing.T) {
	env := setup(t)
	app := seedApplication(t, env.appRepo, "app-1", enrollment.StatusApproved)

	_, err := env.svc.Approve(context.Background(), app.ID)
	vErr, ok := err.(*core.ValidationError)
	if assert.True(t, ok, "expected a validation error, got %v", err) {
		assert.Equal(t, enrollment.ErrReviewed, vErr.Err)
	}

	count, err := env.stuRepo.CountStudents(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, env.mailSvc.sent())
}

func TestServiceApproveCodeCheckFailure(t *testing.T) {
	env := setup(t)
	app := seedApplication(t, env.appRepo, "app-1", enrollment.StatusPending)

	checkErr := pkgerrors.New("store down")
	svc := enrollment.NewService(
		env.appRepo,
		failingCodeCheckRepo{Repository: env.stuRepo, err: checkErr},
		env.mailSvc,
		testLogger{},
		&core.Config{},
	)

	_, err := svc.Approve(context.Background(), app.ID)
	assert.Equal(t, checkErr, pkgerrors.Cause(err))

	// the transition aborted before any write: no roster record, still pending
	count, err := env.stuRepo.CountStudents(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, count)

	updated, err := env.appRepo.GetApplicationByID(context.Background(), app.ID)
	assert.NoError(t, err)
	assert.Equal(t, enrollment.StatusPending, updated.Status)
	assert.Empty(t, env.mailSvc.sent())
}

func TestServiceApprovePartialFailure(t *testing.T) {
	env := setup(t)
	app := seedApplication(t, env.appRepo, "app-1", enrollment.StatusPending)

	svc := enrollment.NewService(
		failingStatusRepo{Repository: env.appRepo, err: pkgerrors.New("write timeout")},
		env.stuRepo,
		env.mailSvc,
		testLogger{},
		&core.Config{},
	)

	stu, err := svc.Approve(context.Background(), app.ID)
	assert.Equal(t, enrollment.ErrPartialApproval, pkgerrors.Cause(err))
	assert.Contains(t, err.Error(), app.ID)

	// the inconsistency is real and surfaced: the roster record exists while
	// the application still reads pending
	assert.NotEmpty(t, stu.ID)
	count, cErr := env.stuRepo.CountStudents(context.Background())
	assert.NoError(t, cErr)
	assert.Equal(t, 1, count)

	updated, gErr := env.appRepo.GetApplicationByID(context.Background(), app.ID)
	assert.NoError(t, gErr)
	assert.Equal(t, enrollment.StatusPending, updated.Status)
	assert.Empty(t, env.mailSvc.sent())
}

func TestServiceReject(t *testing.T) {
	env := setup(t)
	app := seedApplication(t, env.appRepo, "app-1", enrollment.StatusPending)

	rejected, err := env.svc.Reject(context.Background(), app.ID, "missing documents")
	assert.NoError(t, err)
	assert.Equal(t, enrollment.StatusRejected, rejected.Status)

	// a rejection never touches the roster
	count, err := env.stuRepo.CountStudents(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, count)

	if msgs := env.mailSvc.sent(); assert.Len(t, msgs, 1) {
		assert.Equal(t, "admission-rejected", msgs[0].TemplateName)
	}
}

func TestServiceRejectAlreadyReviewed(t *testing.T) {
	env := setup(t)
	app := seedApplication(t, env.appRepo, "app-1", enrollment.StatusRejected)

	_, err := env.svc.Reject(context.Background(), app.ID, "again")
	vErr, ok := err.(*core.ValidationError)
	if assert.True(t, ok, "expected a validation error, got %v", err) {
		assert.Equal(t, enrollment.ErrReviewed, vErr.Err)
	}
	assert.Empty(t, env.mailSvc.sent())
}

func TestServiceApproveSurvivesDroppedNotification(t *testing.T) {
	env := setup(t)
	app := seedApplication(t, env.appRepo, "app-1", enrollment.StatusPending)

	// a mailer that silently drops everything, the worst delivery failure mode
	svc := enrollment.NewService(env.appRepo, env.stuRepo, droppingMailService{}, testLogger{}, &core.Config{})

	stu, err := svc.Approve(context.Background(), app.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, stu.RegistrationCode)

	updated, err := env.appRepo.GetApplicationByID(context.Background(), app.ID)
	assert.NoError(t, err)
	assert.Equal(t, enrollment.StatusApproved, updated.Status)
}

type droppingMailService struct{}

func (droppingMailService) SendMessages(...*core.EmailMessage) {}
