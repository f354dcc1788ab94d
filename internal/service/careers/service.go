// Package careers takes job applications for the clinic's open postings.
package careers

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
	ErrPostingNotFound = errors.New("job posting not found")
	ErrPostingClosed   = errors.New("job posting is closed")
)

type Service struct {
	repo     store.ApplicationRepository
	postings []domain.JobPosting
	notifier notify.Notifier
	hr       notify.Recipient
	log      *slog.Logger
}

type Option func(*Service)

// WithHRContact addresses application notifications to r.
func WithHRContact(r notify.Recipient) Option {
	return func(s *Service) { s.hr = r }
}

func NewService(repo store.ApplicationRepository, postings []domain.JobPosting, notifier notify.Notifier, log *slog.Logger, opts ...Option) *Service {
	if notifier == nil {
		notifier = notify.Nop()
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Service{
		repo:     repo,
		postings: slices.Clone(postings),
		notifier: notifier,
		hr:       notify.Recipient{Name: "HR"},
		log:      log.With(slog.String("component", "service.careers")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListPostings returns the postings in their published order. Closed
// postings are included only when includeClosed is set.
func (s *Service) ListPostings(ctx context.Context, includeClosed bool) []domain.JobPosting {
	out := make([]domain.JobPosting, 0, len(s.postings))
	for _, p := range s.postings {
		if !includeClosed && !p.Open() {
			continue
		}
		p.Requirements = slices.Clone(p.Requirements)
		out = append(out, p)
	}
	return out
}

func (s *Service) Posting(ctx context.Context, id string) (domain.JobPosting, bool) {
	for _, p := range s.postings {
		if p.ID == id {
			p.Requirements = slices.Clone(p.Requirements)
			return p, true
		}
	}
	return domain.JobPosting{}, false
}

type SubmitInput struct {
	JobID       string `field:"job_id" validate:"required"`
	Name        string `field:"name" validate:"required,max=200"`
	Email       string `field:"email" validate:"required,email,max=254"`
	Phone       string `field:"phone" validate:"required,phone"`
	Resume      string `field:"resume" validate:"required,http_url,max=2048"`
	CoverLetter string `field:"cover_letter" validate:"max=10000"`
}

func (s *Service) SubmitApplication(ctx context.Context, in SubmitInput) (domain.JobApplication, error) {
	validation.TrimStrings(&in)
	if err := validation.Struct(in); err != nil {
		return domain.JobApplication{}, err
	}

	posting, ok := s.Posting(ctx, in.JobID)
	if !ok {
		return domain.JobApplication{}, ErrPostingNotFound
	}
	if !posting.Open() {
		return domain.JobApplication{}, ErrPostingClosed
	}

	created, err := s.repo.Create(ctx, domain.JobApplication{
		JobID:       posting.ID,
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Resume:      in.Resume,
		CoverLetter: in.CoverLetter,
		Status:      domain.ApplicationStatusPending,
	})
	if err != nil {
		return domain.JobApplication{}, fmt.Errorf("create application: %w", err)
	}

	if err := s.notifier.Notify(ctx, s.applicationNotification(posting, created)); err != nil {
		s.log.WarnContext(ctx, "application notification failed",
			slog.String("application_id", created.ID.String()),
			slog.Any("err", err),
		)
	}
	return created, nil
}

// FindApplicationByID returns store.ErrNotFound for unknown or malformed ids.
func (s *Service) FindApplicationByID(ctx context.Context, id string) (domain.JobApplication, error) {
	appID, err := uuid.Parse(id)
	if err != nil {
		return domain.JobApplication{}, store.ErrNotFound
	}
	return s.repo.Get(ctx, appID)
}

// ListApplications returns what a posting has received, oldest first.
func (s *Service) ListApplications(ctx context.Context, jobID string) ([]domain.JobApplication, error) {
	if _, ok := s.Posting(ctx, jobID); !ok {
		return nil, ErrPostingNotFound
	}
	apps, err := s.repo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

func (s *Service) applicationNotification(p domain.JobPosting, a domain.JobApplication) notify.Notification {
	return notify.Notification{
		Kind:      notify.KindApplicationSubmitted,
		Recipient: s.hr,
		Contact:   notify.Recipient{Name: a.Name, Phone: a.Phone, Email: a.Email},
		Subject:   "New Job Application",
		Fields: []notify.Field{
			{Label: "Applicant", Value: a.Name},
			{Label: "Position", Value: p.Title},
			{Label: "Email", Value: a.Email},
			{Label: "Phone", Value: a.Phone},
			{Label: "Resume", Value: a.Resume},
			{Label: "Reference", Value: a.ID.String()},
		},
	}
}
