package dummydb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dccampos/secretaria/core/enrollment"
	"github.com/dccampos/secretaria/core/student"
)

func createApplication(t *testing.T, repo enrollment.Repository, id, status string, createdAt time.Time) enrollment.Application {
	app, err := repo.CreateApplication(context.Background(), enrollment.Application{
		ID:        id,
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "ana.souza@example.com",
		Status:    status,
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("createApplication() failed: %v", err)
	}
	return app
}

func TestEnrollmentRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)

	repo := NewEnrollmentRepository(openDB(t))
	createApplication(t, repo, "app-1", enrollment.StatusPending, now.Add(-2*time.Hour))
	createApplication(t, repo, "app-2", enrollment.StatusApproved, now.Add(-time.Hour))
	createApplication(t, repo, "app-3", enrollment.StatusPending, now)

	t.Run("filter by status newest first", func(t *testing.T) {
		apps, err := repo.FilterApplications(ctx, enrollment.QueryFilter{Status: enrollment.StatusPending})
		assert.NoError(t, err)
		if assert.Len(t, apps, 2) {
			assert.Equal(t, "app-3", apps[0].ID)
			assert.Equal(t, "app-1", apps[1].ID)
		}
	})

	t.Run("empty filter returns all", func(t *testing.T) {
		apps, err := repo.FilterApplications(ctx, enrollment.QueryFilter{})
		assert.NoError(t, err)
		assert.Len(t, apps, 3)
	})

	t.Run("count by status", func(t *testing.T) {
		count, err := repo.CountApplicationsByStatus(ctx, enrollment.StatusPending)
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("get by id", func(t *testing.T) {
		app, err := repo.GetApplicationByID(ctx, "app-2")
		assert.NoError(t, err)
		assert.Equal(t, enrollment.StatusApproved, app.Status)

		_, err = repo.GetApplicationByID(ctx, "nope")
		assert.Equal(t, enrollment.ErrNotFound, err)
	})

	t.Run("update status", func(t *testing.T) {
		err := repo.UpdateApplicationStatus(ctx, "app-1", enrollment.StatusRejected)
		assert.NoError(t, err)

		app, err := repo.GetApplicationByID(ctx, "app-1")
		assert.NoError(t, err)
		assert.Equal(t, enrollment.StatusRejected, app.Status)

		assert.Equal(t, enrollment.ErrNotFound, repo.UpdateApplicationStatus(ctx, "nope", enrollment.StatusApproved))
	})
}

func TestStudentRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)

	repo := NewStudentRepository(openDB(t))
	stu, err := repo.CreateStudent(ctx, student.Student{
		ID:               "stu-1",
		RegistrationCode: "48322026",
		Name:             "Ana Souza",
		IsActive:         true,
		CreatedAt:        now.Add(-time.Hour),
	})
	assert.NoError(t, err)
	_, err = repo.CreateStudent(ctx, student.Student{ID: "stu-2", RegistrationCode: "91012026", CreatedAt: now})
	assert.NoError(t, err)

	t.Run("registration code exists", func(t *testing.T) {
		taken, err := repo.RegistrationCodeExists(ctx, "48322026")
		assert.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.RegistrationCodeExists(ctx, "00002026")
		assert.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetStudentByID(ctx, stu.ID)
		assert.NoError(t, err)
		assert.Equal(t, stu.Name, got.Name)

		_, err = repo.GetStudentByID(ctx, "nope")
		assert.Equal(t, student.ErrNotFound, err)
	})

	t.Run("query all newest first", func(t *testing.T) {
		students, err := repo.QueryAllStudents(ctx)
		assert.NoError(t, err)
		if assert.Len(t, students, 2) {
			assert.Equal(t, "stu-2", students[0].ID)
		}
	})

	t.Run("count", func(t *testing.T) {
		count, err := repo.CountStudents(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}
