package domain

// Provider is a bookable clinician. Providers are reference data loaded once
// at startup.
type Provider struct {
	ID         string
	Name       string
	Phone      string
	Specialty  string
	ImageURL   string
	DailyLimit int
}

const DefaultDailyLimit = 5

func DefaultProviders() []Provider {
	return []Provider{
		{
			ID:         "mike",
			Name:       "Dr. Mike Johnson",
			Phone:      "07557362321",
			Specialty:  "General Medicine",
			ImageURL:   "https://images.pexels.com/photos/5327921/pexels-photo-5327921.jpeg?auto=compress&cs=tinysrgb&w=300",
			DailyLimit: DefaultDailyLimit,
		},
		{
			ID:         "sue",
			Name:       "Dr. Sue Williams",
			Phone:      "0706142076",
			Specialty:  "Pediatrics",
			ImageURL:   "https://images.pexels.com/photos/4173251/pexels-photo-4173251.jpeg?auto=compress&cs=tinysrgb&w=300",
			DailyLimit: DefaultDailyLimit,
		},
		{
			ID:         "mark",
			Name:       "Dr. Mark Davis",
			Phone:      "0797486064",
			Specialty:  "Emergency Medicine",
			ImageURL:   "https://images.pexels.com/photos/6129507/pexels-photo-6129507.jpeg?auto=compress&cs=tinysrgb&w=300",
			DailyLimit: DefaultDailyLimit,
		},
		{
			ID:         "emy",
			Name:       "Dr. Emily Brown",
			Phone:      "+254712345678",
			Specialty:  "Mental Health",
			ImageURL:   "https://images.pexels.com/photos/5214707/pexels-photo-5214707.jpeg?auto=compress&cs=tinysrgb&w=300",
			DailyLimit: DefaultDailyLimit,
		},
		{
			ID:         "sharon",
			Name:       "Dr. Sharon Miller",
			Phone:      "+254723456789",
			Specialty:  "Diagnostics",
			ImageURL:   "https://images.pexels.com/photos/4173239/pexels-photo-4173239.jpeg?auto=compress&cs=tinysrgb&w=300",
			DailyLimit: DefaultDailyLimit,
		},
	}
}
