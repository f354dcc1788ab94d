// Package catalog loads the clinic's reference data: the provider roster and
// the job postings. Without a catalog file the seeded defaults are used.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"clinicbook/backend/internal/domain"
)

type Catalog struct {
	Providers []domain.Provider
	Postings  []domain.JobPosting
}

func Default() Catalog {
	return Catalog{
		Providers: domain.DefaultProviders(),
		Postings:  domain.DefaultPostings(),
	}
}

type fileProvider struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Specialty  string `json:"specialty"`
	ImageURL   string `json:"image_url"`
	DailyLimit int    `json:"daily_limit"`
}

type filePosting struct {
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

type file struct {
	Providers []fileProvider `json:"providers"`
	Postings  []filePosting  `json:"postings"`
}

// Load returns Default when path is empty. A file that omits a section keeps
// the default for that section.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Catalog, error) {
	var f file
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}

	c := Default()
	if len(f.Providers) > 0 {
		c.Providers = make([]domain.Provider, 0, len(f.Providers))
		for _, p := range f.Providers {
			limit := p.DailyLimit
			if limit == 0 {
				limit = domain.DefaultDailyLimit
			}
			c.Providers = append(c.Providers, domain.Provider{
				ID:         p.ID,
				Name:       p.Name,
				Phone:      p.Phone,
				Specialty:  p.Specialty,
				ImageURL:   p.ImageURL,
				DailyLimit: limit,
			})
		}
	}
	if len(f.Postings) > 0 {
		c.Postings = make([]domain.JobPosting, 0, len(f.Postings))
		for _, p := range f.Postings {
			status := domain.PostingStatus(p.Status)
			if status == "" {
				status = domain.PostingStatusActive
			}
			typ := domain.EmploymentType(p.Type)
			if typ == "" {
				typ = domain.EmploymentTypeFullTime
			}
			c.Postings = append(c.Postings, domain.JobPosting{
				ID:           p.ID,
				Title:        p.Title,
				Department:   p.Department,
				Description:  p.Description,
				Requirements: p.Requirements,
				Location:     p.Location,
				Type:         typ,
				Posted:       p.Posted,
				Status:       status,
			})
		}
	}

	if err := c.validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func (c Catalog) validate() error {
	var errs []error

	seen := make(map[string]bool, len(c.Providers))
	for i, p := range c.Providers {
		switch {
		case p.ID == "":
			errs = append(errs, fmt.Errorf("providers[%d]: id is required", i))
		case seen[p.ID]:
			errs = append(errs, fmt.Errorf("providers[%d]: duplicate id %q", i, p.ID))
		}
		seen[p.ID] = true
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("providers[%d]: name is required", i))
		}
		if p.DailyLimit < 0 {
			errs = append(errs, fmt.Errorf("providers[%d]: daily_limit must be positive", i))
		}
	}

	seen = make(map[string]bool, len(c.Postings))
	for i, p := range c.Postings {
		switch {
		case p.ID == "":
			errs = append(errs, fmt.Errorf("postings[%d]: id is required", i))
		case seen[p.ID]:
			errs = append(errs, fmt.Errorf("postings[%d]: duplicate id %q", i, p.ID))
		}
		seen[p.ID] = true
		if p.Status != domain.PostingStatusActive && p.Status != domain.PostingStatusClosed {
			errs = append(errs, fmt.Errorf("postings[%d]: unknown status %q", i, p.Status))
		}
		switch p.Type {
		case domain.EmploymentTypeFullTime, domain.EmploymentTypePartTime, domain.EmploymentTypeContract:
		default:
			errs = append(errs, fmt.Errorf("postings[%d]: unknown type %q", i, p.Type))
		}
		if p.Posted != "" && !domain.IsDateKey(p.Posted) {
			errs = append(errs, fmt.Errorf("postings[%d]: posted must be YYYY-MM-DD", i))
		}
	}

	return errors.Join(errs...)
}
