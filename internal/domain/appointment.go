package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	bun.BaseModel `bun:"table:appointments"`

	ID           uuid.UUID         `bun:"id,pk,type:uuid"`
	PatientName  string            `bun:"patient_name,notnull"`
	PatientPhone string            `bun:"patient_phone,notnull"`
	PatientEmail string            `bun:"patient_email"`
	ProviderID   string            `bun:"provider_id,notnull"`
	Service      string            `bun:"service,notnull"`
	Date         string            `bun:"appointment_date,notnull"`
	TimeSlot     string            `bun:"time_slot,notnull"`
	Status       AppointmentStatus `bun:"status,notnull"`
	CreatedAt    time.Time         `bun:"created_at,notnull"`
}

// CountsTowardCapacity reports whether the appointment occupies one of the
// provider's daily places.
func (a Appointment) CountsTowardCapacity() bool {
	return a.Status != AppointmentStatusCancelled
}

// SameRequest reports whether b was created from the same booking request as a.
func (a Appointment) SameRequest(b Appointment) bool {
	return a.ProviderID == b.ProviderID &&
		a.Date == b.Date &&
		a.TimeSlot == b.TimeSlot &&
		a.Service == b.Service &&
		a.PatientName == b.PatientName &&
		a.PatientPhone == b.PatientPhone &&
		a.PatientEmail == b.PatientEmail
}

// Stamp fills the generated fields of a new appointment.
func (a *Appointment) Stamp(now time.Time) error {
	if a.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		a.ID = id
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now.UTC()
	}
	if a.Status == "" {
		a.Status = AppointmentStatusConfirmed
	}
	return nil
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok {
		return a.Stamp(time.Now())
	}
	return nil
}
