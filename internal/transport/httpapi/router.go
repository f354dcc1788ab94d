// Package httpapi serves the website's booking and careers forms as a JSON
// API over gin.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/ratelimit"
	"clinicbook/backend/internal/service/bookings"
	"clinicbook/backend/internal/service/careers"
)

type BookingService interface {
	ListProviders(ctx context.Context) []domain.Provider
	Availability(ctx context.Context, providerID, date string) (bookings.Availability, error)
	CreateBooking(ctx context.Context, in bookings.CreateBookingInput) (domain.Appointment, error)
	ListServices() []string
	ListTimeSlots() []string
}

type CareersService interface {
	ListPostings(ctx context.Context, includeClosed bool) []domain.JobPosting
	Posting(ctx context.Context, id string) (domain.JobPosting, bool)
	SubmitApplication(ctx context.Context, in careers.SubmitInput) (domain.JobApplication, error)
	FindApplicationByID(ctx context.Context, id string) (domain.JobApplication, error)
	ListApplications(ctx context.Context, jobID string) ([]domain.JobApplication, error)
}

type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	// Limiter throttles the create endpoints per client IP. Nil disables it.
	Limiter *ratelimit.Limiter
}

type Handler struct {
	bookings BookingService
	careers  CareersService
	log      *slog.Logger
}

func NewRouter(b BookingService, c CareersService, opts Options, log *slog.Logger) *gin.Engine {
	if log == nil {
		log = slog.Default()
	}
	h := &Handler{
		bookings: b,
		careers:  c,
		log:      log.With(slog.String("component", "http")),
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.log), requestTimeout(opts.RequestTimeout))
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limited := rateLimit(opts.Limiter, h.log)

	v1 := r.Group("/api/v1")
	v1.GET("/providers", h.listProviders)
	v1.GET("/providers/:id/availability", h.availability)
	v1.GET("/services", h.listServices)
	v1.GET("/time-slots", h.listTimeSlots)
	v1.POST("/bookings", limited, h.createBooking)
	v1.GET("/jobs", h.listJobs)
	v1.GET("/jobs/:id", h.getJob)
	v1.GET("/jobs/:id/applications", h.listApplications)
	v1.POST("/applications", limited, h.submitApplication)
	v1.GET("/applications/:id", h.getApplication)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Idempotency-Key"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
