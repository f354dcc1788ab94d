package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/service/bookings"
	"clinicbook/backend/internal/service/careers"
	"clinicbook/backend/internal/store"
	"clinicbook/backend/internal/validation"
)

type providerJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Specialty  string `json:"specialty"`
	ImageURL   string `json:"image_url,omitempty"`
	DailyLimit int    `json:"daily_limit"`
}

type appointmentJSON struct {
	ID           string    `json:"id"`
	PatientName  string    `json:"patient_name"`
	PatientPhone string    `json:"patient_phone"`
	PatientEmail string    `json:"patient_email,omitempty"`
	ProviderID   string    `json:"provider_id"`
	Service      string    `json:"service"`
	Date         string    `json:"date"`
	TimeSlot     string    `json:"time_slot"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type applicationJSON struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Resume      string    `json:"resume"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}

type postingJSON struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Department   string   `json:"department"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Posted       string   `json:"posted"`
	Status       string   `json:"status"`
}

type createBookingRequest struct {
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
	PatientEmail string `json:"patient_email"`
	ProviderID   string `json:"provider_id"`
	Service      string `json:"service"`
	Date         string `json:"date"`
	TimeSlot     string `json:"time_slot"`
}

type submitApplicationRequest struct {
	JobID       string `json:"job_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Resume      string `json:"resume"`
	CoverLetter string `json:"cover_letter"`
}

func (h *Handler) listProviders(c *gin.Context) {
	providers := h.bookings.ListProviders(c.Request.Context())
	out := make([]providerJSON, 0, len(providers))
	for _, p := range providers {
		out = append(out, providerJSON{
			ID:         p.ID,
			Name:       p.Name,
			Phone:      p.Phone,
			Specialty:  p.Specialty,
			ImageURL:   p.ImageURL,
			DailyLimit: p.DailyLimit,
		})
	}
	c.JSON(http.StatusOK, gin.H{"providers": out})
}

func (h *Handler) availability(c *gin.Context) {
	date := c.Query("date")
	if !domain.IsDateKey(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be a date in YYYY-MM-DD format"})
		return
	}

	a, err := h.bookings.Availability(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"provider_id": a.ProviderID,
		"date":        a.Date,
		"available":   a.Available,
		"booked":      a.Booked,
		"limit":       a.Limit,
		"remaining":   a.Remaining,
	})
}

func (h *Handler) listServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": h.bookings.ListServices()})
}

func (h *Handler) listTimeSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"time_slots": h.bookings.ListTimeSlots()})
}

func (h *Handler) createBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	appt, err := h.bookings.CreateBooking(c.Request.Context(), bookings.CreateBookingInput{
		PatientName:    req.PatientName,
		PatientPhone:   req.PatientPhone,
		PatientEmail:   req.PatientEmail,
		ProviderID:     req.ProviderID,
		Service:        req.Service,
		Date:           req.Date,
		TimeSlot:       req.TimeSlot,
		IdempotencyKey: strings.TrimSpace(c.GetHeader("Idempotency-Key")),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.log.Info("booking created",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("provider_id", appt.ProviderID),
		slog.String("date", appt.Date),
	)
	c.JSON(http.StatusCreated, gin.H{"appointment": appointmentJSON{
		ID:           appt.ID.String(),
		PatientName:  appt.PatientName,
		PatientPhone: appt.PatientPhone,
		PatientEmail: appt.PatientEmail,
		ProviderID:   appt.ProviderID,
		Service:      appt.Service,
		Date:         appt.Date,
		TimeSlot:     appt.TimeSlot,
		Status:       string(appt.Status),
		CreatedAt:    appt.CreatedAt,
	}})
}

func (h *Handler) listJobs(c *gin.Context) {
	includeClosed := c.Query("include_closed") == "true"
	postings := h.careers.ListPostings(c.Request.Context(), includeClosed)
	out := make([]postingJSON, 0, len(postings))
	for _, p := range postings {
		out = append(out, toPostingJSON(p))
	}
	c.JSON(http.StatusOK, gin.H{"jobs": out})
}

func (h *Handler) getJob(c *gin.Context) {
	p, ok := h.careers.Posting(c.Request.Context(), c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job posting not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": toPostingJSON(p)})
}

func (h *Handler) submitApplication(c *gin.Context) {
	var req submitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	app, err := h.careers.SubmitApplication(c.Request.Context(), careers.SubmitInput{
		JobID:       req.JobID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Resume:      req.Resume,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.log.Info("application submitted",
		slog.String("application_id", app.ID.String()),
		slog.String("job_id", app.JobID),
	)
	c.JSON(http.StatusCreated, gin.H{"application": toApplicationJSON(app)})
}

func (h *Handler) getApplication(c *gin.Context) {
	app, err := h.careers.FindApplicationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": toApplicationJSON(app)})
}

func (h *Handler) listApplications(c *gin.Context) {
	apps, err := h.careers.ListApplications(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]applicationJSON, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplicationJSON(a))
	}
	c.JSON(http.StatusOK, gin.H{"applications": out})
}

// writeError maps service errors onto status codes. Only unexpected errors
// are logged here; expected rejections show up in the request log.
func (h *Handler) writeError(c *gin.Context, err error) {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, bookings.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, gin.H{"error": "This provider is fully booked on that date. Pick another date or provider."})
	case errors.Is(err, store.ErrIdempotencyConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "This request key was already used for a different booking."})
	case errors.Is(err, careers.ErrPostingClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "This position is no longer accepting applications."})
	case errors.Is(err, bookings.ErrProviderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
	case errors.Is(err, careers.ErrPostingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "job posting not found"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.log.Error("request failed", slog.Any("err", err), slog.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func toPostingJSON(p domain.JobPosting) postingJSON {
	return postingJSON{
		ID:           p.ID,
		Title:        p.Title,
		Department:   p.Department,
		Description:  p.Description,
		Requirements: p.Requirements,
		Location:     p.Location,
		Type:         string(p.Type),
		Posted:       p.Posted,
		Status:       string(p.Status),
	}
}

func toApplicationJSON(a domain.JobApplication) applicationJSON {
	return applicationJSON{
		ID:          a.ID.String(),
		JobID:       a.JobID,
		Name:        a.Name,
		Email:       a.Email,
		Phone:       a.Phone,
		Resume:      a.Resume,
		CoverLetter: a.CoverLetter,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
	}
}
