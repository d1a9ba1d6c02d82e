package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/dccampos/secretaria/core/enrollment"
)

type enrollmentRepository struct {
	db *sqlx.DB
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *sqlx.DB) enrollment.Repository {
	return &enrollmentRepository{db: db}
}

const applicationColumns = `id, first_name, last_name, email, phone, birth_date, document,
	zip_code, street, number, district, city, state, education_level, last_school,
	motivation, photo_url, status, created_at`

func (repo *enrollmentRepository) CreateApplication(ctx context.Context, app enrollment.Application) (enrollment.Application, error) {
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO enrollment_application
			(id, first_name, last_name, email, phone, birth_date, document, zip_code,
			 street, number, district, city, state, education_level, last_school,
			 motivation, photo_url, status, created_at)
		 VALUES
			(:id, :first_name, :last_name, :email, :phone, :birth_date, :document, :zip_code,
			 :street, :number, :district, :city, :state, :education_level, :last_school,
			 :motivation, :photo_url, :status, :created_at)`,
		app,
	)
	if err != nil {
		return enrollment.Application{}, errors.Wrap(err, "inserting application")
	}
	return app, nil
}

func (repo *enrollmentRepository) GetApplicationByID(ctx context.Context, id string) (enrollment.Application, error) {
	var app enrollment.Application
	err := repo.db.GetContext(ctx, &app,
		`SELECT `+applicationColumns+` FROM enrollment_application WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return enrollment.Application{}, enrollment.ErrNotFound
	}
	if err != nil {
		return enrollment.Application{}, errors.Wrap(err, "querying application")
	}
	return app, nil
}

func (repo *enrollmentRepository) FilterApplications(ctx context.Context, filter enrollment.QueryFilter) ([]enrollment.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM enrollment_application`
	args := make([]interface{}, 0, 1)
	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC`

	apps := make([]enrollment.Application, 0)
	if err := repo.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying applications")
	}
	return apps, nil
}

func (repo *enrollmentRepository) CountApplicationsByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := repo.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM enrollment_application WHERE status = $1`, status)
	if err != nil {
		return 0, errors.Wrap(err, "counting applications")
	}
	return count, nil
}

func (repo *enrollmentRepository) UpdateApplicationStatus(ctx context.Context, id, status string) error {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE enrollment_application SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return errors.Wrap(err, "updating application status")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return enrollment.ErrNotFound
	}
	return nil
}
