package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"clinicbook/backend/internal/domain"
)

type BookingRepository interface {
	// CreateWithinCapacity appends appt unless the provider already holds
	// limit active appointments on appt.Date. The count and the append happen
	// under one lock per (provider, date). created is false when appt replays
	// an earlier request and the stored appointment is returned instead.
	CreateWithinCapacity(ctx context.Context, appt domain.Appointment, limit int) (out domain.Appointment, created bool, err error)
	CountActive(ctx context.Context, providerID, date string) (int, error)
	ListByProviderDate(ctx context.Context, providerID, date string) ([]domain.Appointment, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, app domain.JobApplication) (domain.JobApplication, error)
	Get(ctx context.Context, id uuid.UUID) (domain.JobApplication, error)
	ListByJob(ctx context.Context, jobID string) ([]domain.JobApplication, error)
}

// BookingTx is the view of the appointment collection available while the
// (provider, date) lock is held.
type BookingTx interface {
	FindAppointment(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	CountActiveAppointments(ctx context.Context, providerID, date string) (int, error)
	InsertAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
}

// CreateWithinCapacity is the check-then-append shared by every
// BookingRepository. Callers must hold the (provider, date) lock.
//
// An appointment whose preset ID already exists is a replay: the stored
// appointment is returned with created false when it came from the same
// request, otherwise ErrIdempotencyConflict.
func CreateWithinCapacity(ctx context.Context, tx BookingTx, appt domain.Appointment, limit int) (domain.Appointment, bool, error) {
	if appt.ID != uuid.Nil {
		existing, err := tx.FindAppointment(ctx, appt.ID)
		switch {
		case err == nil:
			if !existing.SameRequest(appt) {
				return domain.Appointment{}, false, ErrIdempotencyConflict
			}
			return existing, false, nil
		case !errors.Is(err, ErrNotFound):
			return domain.Appointment{}, false, fmt.Errorf("find appointment: %w", err)
		}
	}

	n, err := tx.CountActiveAppointments(ctx, appt.ProviderID, appt.Date)
	if err != nil {
		return domain.Appointment{}, false, fmt.Errorf("count appointments: %w", err)
	}
	if n >= limit {
		return domain.Appointment{}, false, ErrCapacityExceeded
	}

	out, err := tx.InsertAppointment(ctx, appt)
	if err != nil {
		return domain.Appointment{}, false, err
	}
	return out, true, nil
}

// ProviderDayKey identifies the capacity bucket an appointment falls into.
func ProviderDayKey(providerID, date string) string {
	return providerID + "|" + date
}
