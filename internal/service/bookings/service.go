// Package bookings books patients onto provider days without exceeding a
// provider's daily capacity.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/notify"
	"clinicbook/backend/internal/store"
	"clinicbook/backend/internal/validation"
)

type ValidationError = validation.Error

var (
	ErrProviderNotFound = errors.New("provider not found")
	ErrCapacityExceeded = store.ErrCapacityExceeded
)

type Service struct {
	repo      store.BookingRepository
	providers []domain.Provider
	byID      map[string]int
	notifier  notify.Notifier
	log       *slog.Logger
}

func NewService(repo store.BookingRepository, providers []domain.Provider, notifier notify.Notifier, log *slog.Logger) *Service {
	if notifier == nil {
		notifier = notify.Nop()
	}
	if log == nil {
		log = slog.Default()
	}
	providers = slices.Clone(providers)
	byID := make(map[string]int, len(providers))
	for i, p := range providers {
		if p.DailyLimit <= 0 {
			providers[i].DailyLimit = domain.DefaultDailyLimit
		}
		byID[p.ID] = i
	}
	return &Service{
		repo:      repo,
		providers: providers,
		byID:      byID,
		notifier:  notifier,
		log:       log.With(slog.String("component", "service.bookings")),
	}
}

// ListProviders returns a copy of the provider roster.
func (s *Service) ListProviders(ctx context.Context) []domain.Provider {
	return slices.Clone(s.providers)
}

func (s *Service) Provider(ctx context.Context, id string) (domain.Provider, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Provider{}, false
	}
	return s.providers[i], true
}

func (s *Service) ListServices() []string {
	return domain.Services()
}

func (s *Service) ListTimeSlots() []string {
	return domain.TimeSlots()
}

type Availability struct {
	ProviderID string
	Date       string
	Booked     int
	Limit      int
	Remaining  int
	Available  bool
}

// CheckAvailability reports whether providerID can take another appointment
// on date. Unknown providers are never available.
func (s *Service) CheckAvailability(ctx context.Context, providerID, date string) (bool, error) {
	a, err := s.Availability(ctx, providerID, date)
	if errors.Is(err, ErrProviderNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return a.Available, nil
}

func (s *Service) Availability(ctx context.Context, providerID, date string) (Availability, error) {
	p, ok := s.Provider(ctx, providerID)
	if !ok {
		return Availability{}, ErrProviderNotFound
	}
	n, err := s.repo.CountActive(ctx, providerID, date)
	if err != nil {
		return Availability{}, fmt.Errorf("count active appointments: %w", err)
	}
	remaining := max(p.DailyLimit-n, 0)
	return Availability{
		ProviderID: providerID,
		Date:       date,
		Booked:     n,
		Limit:      p.DailyLimit,
		Remaining:  remaining,
		Available:  remaining > 0,
	}, nil
}

type CreateBookingInput struct {
	PatientName    string `field:"patient_name" validate:"required,max=200"`
	PatientPhone   string `field:"patient_phone" validate:"required,phone"`
	PatientEmail   string `field:"patient_email" validate:"omitempty,email,max=254"`
	ProviderID     string `field:"provider_id" validate:"required"`
	Service        string `field:"service" validate:"required,service"`
	Date           string `field:"date" validate:"required,datekey"`
	TimeSlot       string `field:"time_slot" validate:"required,timeslot"`
	IdempotencyKey string `field:"idempotency_key" validate:"max=256"`
}

func (s *Service) CreateBooking(ctx context.Context, in CreateBookingInput) (domain.Appointment, error) {
	validation.TrimStrings(&in)
	if err := validation.Struct(in); err != nil {
		return domain.Appointment{}, err
	}

	p, ok := s.Provider(ctx, in.ProviderID)
	if !ok {
		return domain.Appointment{}, ErrProviderNotFound
	}

	appt := domain.Appointment{
		PatientName:  in.PatientName,
		PatientPhone: in.PatientPhone,
		PatientEmail: in.PatientEmail,
		ProviderID:   p.ID,
		Service:      in.Service,
		Date:         in.Date,
		TimeSlot:     in.TimeSlot,
		Status:       domain.AppointmentStatusConfirmed,
	}
	if in.IdempotencyKey != "" {
		appt.ID = idempotentID(in.IdempotencyKey)
	}

	out, created, err := s.repo.CreateWithinCapacity(ctx, appt, p.DailyLimit)
	if err != nil {
		return domain.Appointment{}, err
	}
	if !created {
		s.log.DebugContext(ctx, "booking replayed", slog.String("appointment_id", out.ID.String()))
		return out, nil
	}

	if err := s.notifier.Notify(ctx, bookingNotification(p, out)); err != nil {
		s.log.WarnContext(ctx, "booking notification failed",
			slog.String("appointment_id", out.ID.String()),
			slog.Any("err", err),
		)
	}
	return out, nil
}

// idempotentID maps a client key to one appointment ID regardless of
// provider, so reusing a key for a different booking is caught as a conflict.
func idempotentID(key string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("clinicbook:create_booking:"+key))
}

func bookingNotification(p domain.Provider, a domain.Appointment) notify.Notification {
	return notify.Notification{
		Kind:      notify.KindBookingCreated,
		Recipient: notify.Recipient{Name: p.Name, Phone: p.Phone},
		Contact:   notify.Recipient{Name: a.PatientName, Phone: a.PatientPhone, Email: a.PatientEmail},
		Subject:   "New Appointment Booking",
		Fields: []notify.Field{
			{Label: "Patient", Value: a.PatientName},
			{Label: "Phone", Value: a.PatientPhone},
			{Label: "Service", Value: a.Service},
			{Label: "Date", Value: a.Date},
			{Label: "Time", Value: a.TimeSlot},
		},
	}
}
