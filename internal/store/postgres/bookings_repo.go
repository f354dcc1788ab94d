package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/store"
)

type BookingRepo struct {
	db *bun.DB
}

func NewBookingRepo(db *bun.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

type bookingTx struct {
	tx bun.Tx
}

func (r *BookingRepo) CreateWithinCapacity(ctx context.Context, appt domain.Appointment, limit int) (domain.Appointment, bool, error) {
	var (
		out     domain.Appointment
		created bool
	)
	err := r.InProviderDayTransaction(ctx, appt.ProviderID, appt.Date, func(ctx context.Context, tx store.BookingTx) error {
		a, c, err := store.CreateWithinCapacity(ctx, tx, appt, limit)
		if err != nil {
			return err
		}
		out, created = a, c
		return nil
	})
	if err != nil {
		return domain.Appointment{}, false, err
	}
	return out, created, nil
}

func (r *BookingRepo) CountActive(ctx context.Context, providerID, date string) (int, error) {
	return countActive(ctx, r.db, providerID, date)
}

func (r *BookingRepo) ListByProviderDate(ctx context.Context, providerID, date string) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	err := r.db.NewSelect().
		Model(&rows).
		Where("provider_id = ?", providerID).
		Where("appointment_date = ?", date).
		OrderExpr("time_slot ASC, created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// InProviderDayTransaction runs fn in a transaction holding the advisory lock
// for (providerID, date). Concurrent bookings for other days do not wait.
func (r *BookingRepo) InProviderDayTransaction(ctx context.Context, providerID, date string, fn func(ctx context.Context, tx store.BookingTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockProviderDay(ctx, tx, providerID, date); err != nil {
			return err
		}
		return fn(ctx, bookingTx{tx: tx})
	})
}

func lockProviderDay(ctx context.Context, tx bun.Tx, providerID, date string) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", store.ProviderDayKey(providerID, date)).Exec(ctx)
	return err
}

func countActive(ctx context.Context, db bun.IDB, providerID, date string) (int, error) {
	return db.NewSelect().
		Model((*domain.Appointment)(nil)).
		Where("provider_id = ?", providerID).
		Where("appointment_date = ?", date).
		Where("status <> ?", domain.AppointmentStatusCancelled).
		Count(ctx)
}

func (t bookingTx) FindAppointment(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	var a domain.Appointment
	err := t.tx.NewSelect().
		Model(&a).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return a, nil
}

func (t bookingTx) CountActiveAppointments(ctx context.Context, providerID, date string) (int, error) {
	return countActive(ctx, &t.tx, providerID, date)
}

func (t bookingTx) InsertAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	if _, err := t.tx.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Appointment{}, mapInsertError(err)
	}
	return m, nil
}

// mapInsertError turns a primary key collision into ErrIdempotencyConflict:
// the only way to collide is a replayed key whose first use booked another day.
func mapInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return store.ErrIdempotencyConflict
	}
	return err
}
