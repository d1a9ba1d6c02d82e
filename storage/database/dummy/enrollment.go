package dummydb

import (
	"context"
	"sort"

	"github.com/dccampos/secretaria/core/enrollment"
)

type enrollmentRepository struct {
	db *applicationTable
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *DB) enrollment.Repository {
	return &enrollmentRepository{db: db.applications}
}

func (repo *enrollmentRepository) CreateApplication(_ context.Context, app enrollment.Application) (enrollment.Application, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[app.ID] = &app
	return app, nil
}

func (repo *enrollmentRepository) GetApplicationByID(_ context.Context, id string) (enrollment.Application, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if app, ok := repo.db.table[id]; ok {
		return *app, nil
	}
	return enrollment.Application{}, enrollment.ErrNotFound
}

func (repo *enrollmentRepository) FilterApplications(_ context.Context, filter enrollment.QueryFilter) ([]enrollment.Application, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	apps := make([]enrollment.Application, 0, len(repo.db.table))
	for _, app := range repo.db.table {
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		apps = append(apps, *app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].CreatedAt.After(apps[j].CreatedAt) })
	return apps, nil
}

func (repo *enrollmentRepository) CountApplicationsByStatus(_ context.Context, status string) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var count int
	for _, app := range repo.db.table {
		if app.Status == status {
			count++
		}
	}
	return count, nil
}

func (repo *enrollmentRepository) UpdateApplicationStatus(_ context.Context, id, status string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	app, ok := repo.db.table[id]
	if !ok {
		return enrollment.ErrNotFound
	}
	app.Status = status
	return nil
}
