package grpc

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/service/bookings"
	"clinicbook/backend/internal/store"
)

type BookingServer struct {
	svc bookingService
	log *slog.Logger
}

type bookingService interface {
	ListProviders(ctx context.Context) []domain.Provider
	Availability(ctx context.Context, providerID, date string) (bookings.Availability, error)
	CreateBooking(ctx context.Context, in bookings.CreateBookingInput) (domain.Appointment, error)
	ListServices() []string
	ListTimeSlots() []string
}

func NewBookingServer(svc bookingService, log *slog.Logger) *BookingServer {
	if log == nil {
		log = slog.Default()
	}
	return &BookingServer{
		svc: svc,
		log: log.With(slog.String("component", "grpc.booking")),
	}
}

func (s *BookingServer) ListProviders(ctx context.Context, req *ListProvidersRequest) (*ListProvidersResponse, error) {
	providers := s.svc.ListProviders(ctx)
	out := make([]Provider, 0, len(providers))
	for _, p := range providers {
		out = append(out, toAPIProvider(p))
	}
	return &ListProvidersResponse{Providers: out}, nil
}

func (s *BookingServer) CheckAvailability(ctx context.Context, req *CheckAvailabilityRequest) (*CheckAvailabilityResponse, error) {
	log := s.log.With(slog.String("rpc", "CheckAvailability"))

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if !domain.IsDateKey(req.Date) {
		log.Warn("invalid request", slog.String("reason", "bad_date"), slog.String("date", req.Date))
		return nil, status.Error(codes.InvalidArgument, "date must be a date in YYYY-MM-DD format")
	}

	a, err := s.svc.Availability(ctx, req.ProviderID, req.Date)
	if err != nil {
		if errors.Is(err, bookings.ErrProviderNotFound) {
			// Unknown providers are reported as unavailable, not as an error.
			return &CheckAvailabilityResponse{Available: false}, nil
		}
		log.Error("availability check failed", slog.Any("err", err), slog.String("provider_id", req.ProviderID))
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &CheckAvailabilityResponse{
		Available: a.Available,
		Booked:    a.Booked,
		Limit:     a.Limit,
		Remaining: a.Remaining,
	}, nil
}

func (s *BookingServer) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*CreateBookingResponse, error) {
	log := s.log.With(slog.String("rpc", "CreateBooking"))

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	appt, err := s.svc.CreateBooking(ctx, bookings.CreateBookingInput{
		PatientName:    req.PatientName,
		PatientPhone:   req.PatientPhone,
		PatientEmail:   req.PatientEmail,
		ProviderID:     req.ProviderID,
		Service:        req.Service,
		Date:           req.Date,
		TimeSlot:       req.TimeSlot,
		IdempotencyKey: idempotencyKey(ctx),
	})
	if err != nil {
		if errors.Is(err, bookings.ErrCapacityExceeded) {
			log.Info(
				"booking rejected at capacity",
				slog.String("provider_id", req.ProviderID),
				slog.String("date", req.Date),
			)
			return nil, status.Error(codes.FailedPrecondition, "This provider is fully booked on that date. Pick another date or provider.")
		}
		if errors.Is(err, store.ErrIdempotencyConflict) {
			log.Info("booking idempotency conflict", slog.String("provider_id", req.ProviderID))
			return nil, status.Error(codes.FailedPrecondition, "This request key was already used for a different booking. Try again.")
		}
		if errors.Is(err, bookings.ErrProviderNotFound) {
			log.Warn("unknown provider", slog.String("provider_id", req.ProviderID))
			return nil, status.Error(codes.NotFound, "provider not found")
		}
		var vErr *bookings.ValidationError
		if errors.As(err, &vErr) {
			log.Warn("invalid request", slog.Any("err", err), slog.String("provider_id", req.ProviderID))
			return nil, status.Error(codes.InvalidArgument, vErr.Error())
		}
		log.Error("booking create failed", slog.Any("err", err), slog.String("provider_id", req.ProviderID))
		return nil, status.Error(codes.Internal, "internal error")
	}

	log.Info(
		"booking created",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("provider_id", appt.ProviderID),
		slog.String("date", appt.Date),
		slog.String("time_slot", appt.TimeSlot),
	)

	return &CreateBookingResponse{Appointment: toAPIAppointment(appt)}, nil
}

func (s *BookingServer) ListServices(ctx context.Context, req *ListServicesRequest) (*ListServicesResponse, error) {
	return &ListServicesResponse{
		Services:  s.svc.ListServices(),
		TimeSlots: s.svc.ListTimeSlots(),
	}, nil
}

func idempotencyKey(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get("idempotency-key")
	if len(values) == 0 {
		values = md.Get("x-idempotency-key")
	}
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
