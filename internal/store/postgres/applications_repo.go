package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/store"
)

type ApplicationRepo struct {
	db *bun.DB
}

func NewApplicationRepo(db *bun.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

func (r *ApplicationRepo) Create(ctx context.Context, app domain.JobApplication) (domain.JobApplication, error) {
	m := app
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.JobApplication{}, err
	}
	return m, nil
}

func (r *ApplicationRepo) Get(ctx context.Context, id uuid.UUID) (domain.JobApplication, error) {
	var a domain.JobApplication
	err := r.db.NewSelect().
		Model(&a).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.JobApplication{}, store.ErrNotFound
		}
		return domain.JobApplication{}, err
	}
	return a, nil
}

func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]domain.JobApplication, error) {
	var rows []domain.JobApplication
	err := r.db.NewSelect().
		Model(&rows).
		Where("job_id = ?", jobID).
		OrderExpr("applied_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
