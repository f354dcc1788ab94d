package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/store"
)

type ApplicationRepo struct {
	now func() time.Time

	mu   sync.RWMutex
	apps []domain.JobApplication
}

func NewApplicationRepo() *ApplicationRepo {
	return &ApplicationRepo{now: time.Now}
}

func (r *ApplicationRepo) Create(ctx context.Context, app domain.JobApplication) (domain.JobApplication, error) {
	if err := ctx.Err(); err != nil {
		return domain.JobApplication{}, err
	}
	if err := app.Stamp(r.now()); err != nil {
		return domain.JobApplication{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps = append(r.apps, app)
	return app, nil
}

func (r *ApplicationRepo) Get(ctx context.Context, id uuid.UUID) (domain.JobApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.apps {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.JobApplication{}, store.ErrNotFound
}

func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]domain.JobApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.JobApplication
	for _, a := range r.apps {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}
