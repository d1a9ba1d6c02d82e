package dummydb

import (
	"context"
	"time"

	"github.com/dccampos/secretaria/core/attendance"
)

type attendanceRepository struct {
	db *tokenTable
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.tokens}
}

func (repo *attendanceRepository) LatestLive(_ context.Context, now time.Time) (attendance.Token, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var latest *attendance.Token
	for _, tok := range repo.db.table {
		if !tok.Live(now) {
			continue
		}
		if latest == nil || tok.CreatedAt.After(latest.CreatedAt) {
			latest = tok
		}
	}
	if latest == nil {
		return attendance.Token{}, attendance.ErrNoLiveToken
	}
	return *latest, nil
}

func (repo *attendanceRepository) CreateToken(_ context.Context, tok attendance.Token) (attendance.Token, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.seq++
	tok.ID = repo.db.seq
	repo.db.table[tok.ID] = &tok
	return tok, nil
}
