package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/service/careers"
	"clinicbook/backend/internal/store"
)

type CareersServer struct {
	svc careersService
	log *slog.Logger
}

type careersService interface {
	ListPostings(ctx context.Context, includeClosed bool) []domain.JobPosting
	SubmitApplication(ctx context.Context, in careers.SubmitInput) (domain.JobApplication, error)
	FindApplicationByID(ctx context.Context, id string) (domain.JobApplication, error)
}

func NewCareersServer(svc careersService, log *slog.Logger) *CareersServer {
	if log == nil {
		log = slog.Default()
	}
	return &CareersServer{
		svc: svc,
		log: log.With(slog.String("component", "grpc.careers")),
	}
}

func (s *CareersServer) ListPostings(ctx context.Context, req *ListPostingsRequest) (*ListPostingsResponse, error) {
	includeClosed := req != nil && req.IncludeClosed
	postings := s.svc.ListPostings(ctx, includeClosed)
	out := make([]JobPosting, 0, len(postings))
	for _, p := range postings {
		out = append(out, toAPIPosting(p))
	}
	return &ListPostingsResponse{Postings: out}, nil
}

func (s *CareersServer) SubmitApplication(ctx context.Context, req *SubmitApplicationRequest) (*SubmitApplicationResponse, error) {
	log := s.log.With(slog.String("rpc", "SubmitApplication"))

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	app, err := s.svc.SubmitApplication(ctx, careers.SubmitInput{
		JobID:       req.JobID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Resume:      req.Resume,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		if errors.Is(err, careers.ErrPostingNotFound) {
			log.Warn("unknown posting", slog.String("job_id", req.JobID))
			return nil, status.Error(codes.NotFound, "job posting not found")
		}
		if errors.Is(err, careers.ErrPostingClosed) {
			log.Info("application to closed posting", slog.String("job_id", req.JobID))
			return nil, status.Error(codes.FailedPrecondition, "This position is no longer accepting applications.")
		}
		var vErr *careers.ValidationError
		if errors.As(err, &vErr) {
			log.Warn("invalid request", slog.Any("err", err), slog.String("job_id", req.JobID))
			return nil, status.Error(codes.InvalidArgument, vErr.Error())
		}
		log.Error("application submit failed", slog.Any("err", err), slog.String("job_id", req.JobID))
		return nil, status.Error(codes.Internal, "internal error")
	}

	log.Info(
		"application submitted",
		slog.String("application_id", app.ID.String()),
		slog.String("job_id", app.JobID),
	)

	return &SubmitApplicationResponse{Application: toAPIApplication(app)}, nil
}

func (s *CareersServer) GetApplication(ctx context.Context, req *GetApplicationRequest) (*GetApplicationResponse, error) {
	log := s.log.With(slog.String("rpc", "GetApplication"))

	if req == nil || req.ID == "" {
		log.Warn("invalid request", slog.String("reason", "missing_id"))
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	app, err := s.svc.FindApplicationByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "application not found")
		}
		log.Error("application lookup failed", slog.Any("err", err), slog.String("application_id", req.ID))
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &GetApplicationResponse{Application: toAPIApplication(app)}, nil
}
