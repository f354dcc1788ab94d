package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type EmploymentType string

const (
	EmploymentTypeFullTime EmploymentType = "full-time"
	EmploymentTypePartTime EmploymentType = "part-time"
	EmploymentTypeContract EmploymentType = "contract"
)

type PostingStatus string

const (
	PostingStatusActive PostingStatus = "active"
	PostingStatusClosed PostingStatus = "closed"
)

type JobPosting struct {
	ID           string
	Title        string
	Department   string
	Description  string
	Requirements []string
	Location     string
	Type         EmploymentType
	Posted       string
	Status       PostingStatus
}

func (p JobPosting) Open() bool {
	return p.Status == PostingStatusActive
}

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

type JobApplication struct {
	bun.BaseModel `bun:"table:job_applications"`

	ID          uuid.UUID         `bun:"id,pk,type:uuid"`
	JobID       string            `bun:"job_id,notnull"`
	Name        string            `bun:"name,notnull"`
	Email       string            `bun:"email,notnull"`
	Phone       string            `bun:"phone,notnull"`
	Resume      string            `bun:"resume,notnull"`
	CoverLetter string            `bun:"cover_letter"`
	Status      ApplicationStatus `bun:"status,notnull"`
	AppliedAt   time.Time         `bun:"applied_at,notnull"`
}

func (a *JobApplication) Stamp(now time.Time) error {
	if a.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		a.ID = id
	}
	if a.AppliedAt.IsZero() {
		a.AppliedAt = now.UTC()
	}
	if a.Status == "" {
		a.Status = ApplicationStatusPending
	}
	return nil
}

func (a *JobApplication) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok {
		return a.Stamp(time.Now())
	}
	return nil
}

func DefaultPostings() []JobPosting {
	return []JobPosting{
		{
			ID:          "general-practitioner",
			Title:       "General Practitioner",
			Department:  "Medical",
			Description: "We are seeking a dedicated General Practitioner to provide comprehensive primary care services to our patients. The ideal candidate will have excellent diagnostic skills and a patient-centered approach.",
			Requirements: []string{
				"MD or equivalent medical degree",
				"Valid medical license in Kenya",
				"2+ years of clinical experience",
				"Strong communication skills",
				"Fluent in English and Swahili",
			},
			Location: "Nairobi",
			Type:     EmploymentTypeFullTime,
			Posted:   "2025-01-10",
			Status:   PostingStatusActive,
		},
		{
			ID:          "registered-nurse",
			Title:       "Registered Nurse",
			Department:  "Nursing",
			Description: "Join our compassionate nursing team to provide high-quality patient care in our general ward. Experience in emergency care is a plus.",
			Requirements: []string{
				"Bachelor of Science in Nursing",
				"Valid nursing license",
				"1+ years of hospital experience",
				"BLS certification required",
				"ACLS certification preferred",
			},
			Location: "Nairobi",
			Type:     EmploymentTypeFullTime,
			Posted:   "2025-01-08",
			Status:   PostingStatusActive,
		},
		{
			ID:          "lab-technician",
			Title:       "Laboratory Technician",
			Department:  "Diagnostics",
			Description: "We need a skilled Laboratory Technician to conduct various diagnostic tests and maintain laboratory equipment.",
			Requirements: []string{
				"Diploma in Medical Laboratory Technology",
				"Valid laboratory license",
				"Experience with automated analyzers",
				"Attention to detail",
				"Computer skills",
			},
			Location: "Nairobi",
			Type:     EmploymentTypeFullTime,
			Posted:   "2025-01-05",
			Status:   PostingStatusActive,
		},
		{
			ID:          "physiotherapist",
			Title:       "Physiotherapist",
			Department:  "Rehabilitation",
			Description: "Seeking a qualified Physiotherapist to help patients recover and improve their physical function through therapeutic interventions.",
			Requirements: []string{
				"Bachelor in Physiotherapy",
				"Valid physiotherapy license",
				"2+ years of clinical experience",
				"Knowledge of modern rehabilitation techniques",
				"Good interpersonal skills",
			},
			Location: "Nairobi",
			Type:     EmploymentTypeFullTime,
			Posted:   "2025-01-03",
			Status:   PostingStatusActive,
		},
		{
			ID:          "receptionist",
			Title:       "Medical Receptionist",
			Department:  "Administration",
			Description: "We are looking for a friendly and organized Medical Receptionist to be the first point of contact for our patients.",
			Requirements: []string{
				"Diploma in any field",
				"Experience in customer service",
				"Proficiency in MS Office",
				"Excellent communication skills",
				"Ability to multitask",
			},
			Location: "Nairobi",
			Type:     EmploymentTypeFullTime,
			Posted:   "2024-12-28",
			Status:   PostingStatusActive,
		},
	}
}
