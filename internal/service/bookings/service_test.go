package bookings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/notify"
	"clinicbook/backend/internal/store"
	"clinicbook/backend/internal/store/memory"
)

type fakeRepo struct {
	createFn func(ctx context.Context, appt domain.Appointment, limit int) (domain.Appointment, bool, error)
	countFn  func(ctx context.Context, providerID, date string) (int, error)
}

func (f *fakeRepo) CreateWithinCapacity(ctx context.Context, appt domain.Appointment, limit int) (domain.Appointment, bool, error) {
	if f.createFn == nil {
		panic("CreateWithinCapacity not configured")
	}
	return f.createFn(ctx, appt, limit)
}

func (f *fakeRepo) CountActive(ctx context.Context, providerID, date string) (int, error) {
	if f.countFn == nil {
		panic("CountActive not configured")
	}
	return f.countFn(ctx, providerID, date)
}

func (f *fakeRepo) ListByProviderDate(ctx context.Context, providerID, date string) ([]domain.Appointment, error) {
	panic("ListByProviderDate not configured")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		PatientName:  "Jane Doe",
		PatientPhone: "0700000000",
		ProviderID:   "mike",
		Service:      "General Consultation",
		Date:         "2025-03-01",
		TimeSlot:     "09:00",
	}
}

func TestCreateBooking_FillsDayThenRejects(t *testing.T) {
	repo := memory.NewBookingRepo()
	svc := NewService(repo, domain.DefaultProviders(), nil, discardLogger())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		appt, err := svc.CreateBooking(ctx, validInput())
		if err != nil {
			t.Fatalf("booking %d: unexpected error: %v", i+1, err)
		}
		if appt.Status != domain.AppointmentStatusConfirmed {
			t.Fatalf("status = %q, want %q", appt.Status, domain.AppointmentStatusConfirmed)
		}
		if appt.ID == uuid.Nil || appt.CreatedAt.IsZero() {
			t.Fatalf("generated fields not set: %+v", appt)
		}
	}

	_, err := svc.CreateBooking(ctx, validInput())
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("sixth booking err = %v, want %v", err, ErrCapacityExceeded)
	}

	appts, err := repo.ListByProviderDate(ctx, "mike", "2025-03-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(appts) != 5 {
		t.Fatalf("stored = %d, want 5", len(appts))
	}

	ok, err := svc.CheckAvailability(ctx, "mike", "2025-03-01")
	if err != nil || ok {
		t.Fatalf("CheckAvailability = %v, %v, want false, nil", ok, err)
	}
}

func TestCheckAvailability_UnknownProvider(t *testing.T) {
	svc := NewService(&fakeRepo{}, domain.DefaultProviders(), nil, discardLogger())

	ok, err := svc.CheckAvailability(context.Background(), "unknown-id", "2025-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("available = true, want false")
	}

	if _, err := svc.Availability(context.Background(), "unknown-id", "2025-03-01"); !errors.Is(err, ErrProviderNotFound) {
		t.Fatalf("Availability err = %v, want %v", err, ErrProviderNotFound)
	}
}

func TestAvailability_Remaining(t *testing.T) {
	svc := NewService(&fakeRepo{
		countFn: func(ctx context.Context, providerID, date string) (int, error) {
			return 3, nil
		},
	}, domain.DefaultProviders(), nil, discardLogger())

	a, err := svc.Availability(context.Background(), "sue", "2025-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Booked != 3 || a.Limit != 5 || a.Remaining != 2 || !a.Available {
		t.Fatalf("availability = %+v", a)
	}
}

func TestCheckAvailability_PropagatesStoreError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(&fakeRepo{
		countFn: func(ctx context.Context, providerID, date string) (int, error) {
			return 0, boom
		},
	}, domain.DefaultProviders(), nil, discardLogger())

	if _, err := svc.CheckAvailability(context.Background(), "mike", "2025-03-01"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{}, domain.DefaultProviders(), nil, discardLogger())

	cases := []struct {
		name   string
		mutate func(in *CreateBookingInput)
		want   string
	}{
		{"missing name", func(in *CreateBookingInput) { in.PatientName = "   " }, "patient_name is required"},
		{"missing phone", func(in *CreateBookingInput) { in.PatientPhone = "" }, "patient_phone is required"},
		{"bad email", func(in *CreateBookingInput) { in.PatientEmail = "nope" }, "patient_email must be a valid email address"},
		{"missing provider", func(in *CreateBookingInput) { in.ProviderID = "" }, "provider_id is required"},
		{"unknown service", func(in *CreateBookingInput) { in.Service = "Dentistry" }, "unknown service"},
		{"bad date", func(in *CreateBookingInput) { in.Date = "01/03/2025" }, "date must be a date in YYYY-MM-DD format"},
		{"unknown slot", func(in *CreateBookingInput) { in.TimeSlot = "13:00" }, "unknown time_slot"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			_, err := svc.CreateBooking(context.Background(), in)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error type = %T (%v), want *ValidationError", err, err)
			}
			if vErr.Error() != tc.want {
				t.Fatalf("error = %q, want %q", vErr.Error(), tc.want)
			}
		})
	}
}

func TestCreateBooking_UnknownProvider(t *testing.T) {
	svc := NewService(&fakeRepo{}, domain.DefaultProviders(), nil, discardLogger())

	in := validInput()
	in.ProviderID = "nobody"
	if _, err := svc.CreateBooking(context.Background(), in); !errors.Is(err, ErrProviderNotFound) {
		t.Fatalf("err = %v, want %v", err, ErrProviderNotFound)
	}
}

func TestCreateBooking_PassesLimitAndTrimmedFields(t *testing.T) {
	var gotLimit int
	var got domain.Appointment
	providers := []domain.Provider{{ID: "solo", Name: "Dr. Solo", DailyLimit: 2}}
	svc := NewService(&fakeRepo{
		createFn: func(ctx context.Context, appt domain.Appointment, limit int) (domain.Appointment, bool, error) {
			gotLimit = limit
			got = appt
			return appt, true, nil
		},
	}, providers, nil, discardLogger())

	in := validInput()
	in.ProviderID = "solo"
	in.PatientName = "  Jane Doe  "
	if _, err := svc.CreateBooking(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 2 {
		t.Fatalf("limit = %d, want 2", gotLimit)
	}
	if got.PatientName != "Jane Doe" {
		t.Fatalf("patient name = %q, want trimmed", got.PatientName)
	}
	if got.ID != uuid.Nil {
		t.Fatalf("ID = %s, want nil without idempotency key", got.ID)
	}
}

func TestCreateBooking_IdempotencyKeyReplays(t *testing.T) {
	repo := memory.NewBookingRepo()
	svc := NewService(repo, domain.DefaultProviders(), nil, discardLogger())
	ctx := context.Background()

	in := validInput()
	in.IdempotencyKey = "form-submit-1"

	first, err := svc.CreateBooking(ctx, in)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := svc.CreateBooking(ctx, in)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("replay ID = %s, want %s", second.ID, first.ID)
	}
	if n, _ := repo.CountActive(ctx, "mike", "2025-03-01"); n != 1 {
		t.Fatalf("active = %d, want 1", n)
	}

	in.TimeSlot = "10:00"
	if _, err := svc.CreateBooking(ctx, in); !errors.Is(err, store.ErrIdempotencyConflict) {
		t.Fatalf("err = %v, want %v", err, store.ErrIdempotencyConflict)
	}
}

func TestCreateBooking_ReplayNotifiesOnce(t *testing.T) {
	calls := 0
	n := notify.Func(func(ctx context.Context, n notify.Notification) error {
		calls++
		return nil
	})
	svc := NewService(memory.NewBookingRepo(), domain.DefaultProviders(), n, discardLogger())
	ctx := context.Background()

	in := validInput()
	in.IdempotencyKey = "k1"
	for i := 0; i < 3; i++ {
		if _, err := svc.CreateBooking(ctx, in); err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
	}
	if calls != 1 {
		t.Fatalf("notifications = %d, want 1", calls)
	}
}

func TestCreateBooking_KeyReusedForOtherProviderConflicts(t *testing.T) {
	repo := memory.NewBookingRepo()
	svc := NewService(repo, domain.DefaultProviders(), nil, discardLogger())
	ctx := context.Background()

	in := validInput()
	in.IdempotencyKey = "k1"
	if _, err := svc.CreateBooking(ctx, in); err != nil {
		t.Fatalf("first: %v", err)
	}

	in.ProviderID = "sue"
	if _, err := svc.CreateBooking(ctx, in); !errors.Is(err, store.ErrIdempotencyConflict) {
		t.Fatalf("err = %v, want %v", err, store.ErrIdempotencyConflict)
	}
	if n, _ := repo.CountActive(ctx, "sue", "2025-03-01"); n != 0 {
		t.Fatalf("sue active = %d, want 0", n)
	}
}

func TestCreateBooking_NotifiesProvider(t *testing.T) {
	var got []notify.Notification
	n := notify.Func(func(ctx context.Context, n notify.Notification) error {
		got = append(got, n)
		return nil
	})
	svc := NewService(memory.NewBookingRepo(), domain.DefaultProviders(), n, discardLogger())

	if _, err := svc.CreateBooking(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("notifications = %d, want 1", len(got))
	}

	want := "New Appointment Booking:\n\nPatient: Jane Doe\nPhone: 0700000000\nService: General Consultation\nDate: 2025-03-01\nTime: 09:00"
	if got[0].Text() != want {
		t.Fatalf("text = %q, want %q", got[0].Text(), want)
	}
	if got[0].Recipient.Phone != "07557362321" {
		t.Fatalf("recipient phone = %q", got[0].Recipient.Phone)
	}
}

func TestCreateBooking_NotifierFailureDoesNotFailBooking(t *testing.T) {
	repo := memory.NewBookingRepo()
	n := notify.Func(func(ctx context.Context, n notify.Notification) error {
		return errors.New("whatsapp unreachable")
	})
	svc := NewService(repo, domain.DefaultProviders(), n, discardLogger())

	appt, err := svc.CreateBooking(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.ID == uuid.Nil {
		t.Fatalf("expected created appointment")
	}
	if c, _ := repo.CountActive(context.Background(), "mike", "2025-03-01"); c != 1 {
		t.Fatalf("active = %d, want 1", c)
	}
}

func TestListProvidersReturnsCopy(t *testing.T) {
	svc := NewService(&fakeRepo{}, domain.DefaultProviders(), nil, discardLogger())

	list := svc.ListProviders(context.Background())
	if len(list) != 5 {
		t.Fatalf("providers = %d, want 5", len(list))
	}
	list[0].Name = "changed"

	p, ok := svc.Provider(context.Background(), list[0].ID)
	if !ok || p.Name == "changed" {
		t.Fatalf("provider roster was mutated through ListProviders")
	}
	if _, ok := svc.Provider(context.Background(), "nobody"); ok {
		t.Fatalf("Provider(nobody) found")
	}
}
