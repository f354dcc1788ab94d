package validation

import (
	"errors"
	"testing"
)

type sample struct {
	Name    string `field:"name" validate:"required,max=10"`
	Email   string `field:"email" validate:"omitempty,email"`
	Phone   string `field:"phone" validate:"required,phone"`
	Service string `field:"service" validate:"required,service"`
	Slot    string `field:"time_slot" validate:"required,timeslot"`
	Date    string `field:"date" validate:"required,datekey"`
	Resume  string `field:"resume" validate:"omitempty,http_url"`
}

func valid() sample {
	return sample{
		Name:    "Jane",
		Phone:   "+254 712 345678",
		Service: "Diagnostics",
		Slot:    "08:30",
		Date:    "2025-03-01",
	}
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *sample)
		wantErr string
	}{
		{name: "valid", mutate: func(s *sample) {}},
		{name: "missing name", mutate: func(s *sample) { s.Name = "" }, wantErr: "name is required"},
		{name: "name too long", mutate: func(s *sample) { s.Name = "abcdefghijk" }, wantErr: "name must be at most 10 characters"},
		{name: "bad email", mutate: func(s *sample) { s.Email = "nope" }, wantErr: "email must be a valid email address"},
		{name: "bad phone", mutate: func(s *sample) { s.Phone = "call me" }, wantErr: "phone must be a valid phone number"},
		{name: "unknown service", mutate: func(s *sample) { s.Service = "Dentistry" }, wantErr: "unknown service"},
		{name: "unknown slot", mutate: func(s *sample) { s.Slot = "13:00" }, wantErr: "unknown time_slot"},
		{name: "bad date", mutate: func(s *sample) { s.Date = "01/03/2025" }, wantErr: "date must be a date in YYYY-MM-DD format"},
		{name: "bad resume", mutate: func(s *sample) { s.Resume = "my cv" }, wantErr: "resume must be a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)

			err := Struct(s)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("err = %v, want nil", err)
				}
				return
			}
			var vErr *Error
			if !errors.As(err, &vErr) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if vErr.Error() != tt.wantErr {
				t.Fatalf("error = %q, want %q", vErr.Error(), tt.wantErr)
			}
		})
	}
}

func TestTrimStrings(t *testing.T) {
	s := sample{Name: "  Jane ", Phone: "\t0700000000\n"}
	TrimStrings(&s)
	if s.Name != "Jane" || s.Phone != "0700000000" {
		t.Fatalf("trimmed = %q / %q", s.Name, s.Phone)
	}

	// Non-pointer values are ignored.
	TrimStrings(s)
}
