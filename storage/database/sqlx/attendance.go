package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/dccampos/secretaria/core/attendance"
)

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) LatestLive(ctx context.Context, now time.Time) (attendance.Token, error) {
	var tok attendance.Token
	err := repo.db.GetContext(ctx, &tok,
		`SELECT id, token, created_at, expires_at
		   FROM attendance_token
		  WHERE expires_at > $1
		  ORDER BY created_at DESC
		  LIMIT 1`,
		now,
	)
	if err == sql.ErrNoRows {
		return attendance.Token{}, attendance.ErrNoLiveToken
	}
	if err != nil {
		return attendance.Token{}, errors.Wrap(err, "querying live token")
	}
	return tok, nil
}

func (repo *attendanceRepository) CreateToken(ctx context.Context, tok attendance.Token) (attendance.Token, error) {
	err := repo.db.QueryRowContext(ctx,
		`INSERT INTO attendance_token (token, created_at, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		tok.Value, tok.CreatedAt, tok.ExpiresAt,
	).Scan(&tok.ID)
	if err != nil {
		return attendance.Token{}, errors.Wrap(err, "inserting token")
	}
	return tok, nil
}
