package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/dccampos/secretaria/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

const studentColumns = `id, registration_code, name, email, document, photo_url,
	class_group, is_active, origin_application_id, created_at, updated_at`

func (repo *studentRepository) RegistrationCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM student WHERE registration_code = $1)`, code)
	if err != nil {
		return false, errors.Wrap(err, "checking registration code")
	}
	return exists, nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO student
			(id, registration_code, name, email, document, photo_url, class_group,
			 is_active, origin_application_id, created_at, updated_at)
		 VALUES
			(:id, :registration_code, :name, :email, :document, :photo_url, :class_group,
			 :is_active, :origin_application_id, :created_at, :updated_at)`,
		stu,
	)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return stu, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	var stu student.Student
	err := repo.db.GetContext(ctx, &stu,
		`SELECT `+studentColumns+` FROM student WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	if err != nil {
		return student.Student{}, errors.Wrap(err, "querying student")
	}
	return stu, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	students := make([]student.Student, 0)
	err := repo.db.SelectContext(ctx, &students,
		`SELECT `+studentColumns+` FROM student ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (repo *studentRepository) CountStudents(ctx context.Context) (int, error) {
	var count int
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM student`); err != nil {
		return 0, errors.Wrap(err, "counting students")
	}
	return count, nil
}
