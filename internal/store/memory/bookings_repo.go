package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/store"
)

// BookingRepo keeps appointments in process memory. The collection starts
// empty and only grows.
type BookingRepo struct {
	days *keyedMutex
	now  func() time.Time

	mu    sync.RWMutex
	appts []domain.Appointment
	byID  map[uuid.UUID]int
}

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{
		days: newKeyedMutex(),
		now:  time.Now,
		byID: make(map[uuid.UUID]int),
	}
}

type bookingTx struct {
	r *BookingRepo
}

func (r *BookingRepo) CreateWithinCapacity(ctx context.Context, appt domain.Appointment, limit int) (domain.Appointment, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Appointment{}, false, err
	}
	unlock := r.days.Lock(store.ProviderDayKey(appt.ProviderID, appt.Date))
	defer unlock()

	return store.CreateWithinCapacity(ctx, bookingTx{r: r}, appt, limit)
}

func (r *BookingRepo) CountActive(ctx context.Context, providerID, date string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.countActiveLocked(providerID, date), nil
}

func (r *BookingRepo) ListByProviderDate(ctx context.Context, providerID, date string) ([]domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Appointment
	for _, a := range r.appts {
		if a.ProviderID == providerID && a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *BookingRepo) countActiveLocked(providerID, date string) int {
	n := 0
	for _, a := range r.appts {
		if a.ProviderID == providerID && a.Date == date && a.CountsTowardCapacity() {
			n++
		}
	}
	return n
}

func (t bookingTx) FindAppointment(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	t.r.mu.RLock()
	defer t.r.mu.RUnlock()

	i, ok := t.r.byID[id]
	if !ok {
		return domain.Appointment{}, store.ErrNotFound
	}
	return t.r.appts[i], nil
}

func (t bookingTx) CountActiveAppointments(ctx context.Context, providerID, date string) (int, error) {
	return t.r.CountActive(ctx, providerID, date)
}

func (t bookingTx) InsertAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	if err := appt.Stamp(t.r.now()); err != nil {
		return domain.Appointment{}, err
	}

	t.r.mu.Lock()
	defer t.r.mu.Unlock()

	// A preset ID may have been claimed under another (provider, date) lock.
	if _, ok := t.r.byID[appt.ID]; ok {
		return domain.Appointment{}, store.ErrIdempotencyConflict
	}
	t.r.byID[appt.ID] = len(t.r.appts)
	t.r.appts = append(t.r.appts, appt)
	return appt, nil
}
