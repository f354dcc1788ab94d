package grpc

import (
	"time"

	"clinicbook/backend/internal/domain"
)

type Provider struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Specialty  string `json:"specialty"`
	ImageURL   string `json:"image_url,omitempty"`
	DailyLimit int    `json:"daily_limit"`
}

type Appointment struct {
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

type JobPosting struct {
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

type JobApplication struct {
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

type ListProvidersRequest struct{}

type ListProvidersResponse struct {
	Providers []Provider `json:"providers"`
}

type CheckAvailabilityRequest struct {
	ProviderID string `json:"provider_id"`
	Date       string `json:"date"`
}

type CheckAvailabilityResponse struct {
	Available bool `json:"available"`
	Booked    int  `json:"booked"`
	Limit     int  `json:"limit"`
	Remaining int  `json:"remaining"`
}

type CreateBookingRequest struct {
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
	PatientEmail string `json:"patient_email,omitempty"`
	ProviderID   string `json:"provider_id"`
	Service      string `json:"service"`
	Date         string `json:"date"`
	TimeSlot     string `json:"time_slot"`
}

type CreateBookingResponse struct {
	Appointment Appointment `json:"appointment"`
}

type ListServicesRequest struct{}

type ListServicesResponse struct {
	Services  []string `json:"services"`
	TimeSlots []string `json:"time_slots"`
}

type ListPostingsRequest struct {
	IncludeClosed bool `json:"include_closed,omitempty"`
}

type ListPostingsResponse struct {
	Postings []JobPosting `json:"postings"`
}

type SubmitApplicationRequest struct {
	JobID       string `json:"job_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Resume      string `json:"resume"`
	CoverLetter string `json:"cover_letter,omitempty"`
}

type SubmitApplicationResponse struct {
	Application JobApplication `json:"application"`
}

type GetApplicationRequest struct {
	ID string `json:"id"`
}

type GetApplicationResponse struct {
	Application JobApplication `json:"application"`
}

func toAPIProvider(p domain.Provider) Provider {
	return Provider{
		ID:         p.ID,
		Name:       p.Name,
		Phone:      p.Phone,
		Specialty:  p.Specialty,
		ImageURL:   p.ImageURL,
		DailyLimit: p.DailyLimit,
	}
}

func toAPIAppointment(a domain.Appointment) Appointment {
	return Appointment{
		ID:           a.ID.String(),
		PatientName:  a.PatientName,
		PatientPhone: a.PatientPhone,
		PatientEmail: a.PatientEmail,
		ProviderID:   a.ProviderID,
		Service:      a.Service,
		Date:         a.Date,
		TimeSlot:     a.TimeSlot,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
	}
}

func toAPIPosting(p domain.JobPosting) JobPosting {
	return JobPosting{
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

func toAPIApplication(a domain.JobApplication) JobApplication {
	return JobApplication{
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
