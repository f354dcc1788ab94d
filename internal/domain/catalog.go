package domain

import (
	"slices"
	"time"
)

// DateLayout is the calendar-date key used by appointments and postings.
// Dates carry no time zone; two bookings share a day iff their keys are equal.
const DateLayout = "2006-01-02"

var services = []string{
	"General Consultation",
	"Emergency Care",
	"Pediatrics",
	"Mental Health",
	"Diagnostics",
	"Medical Imaging",
	"Surgery Support",
	"Wellness Check",
	"Physiotherapy",
	"Nutrition Counseling",
}

var timeSlots = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30",
	"11:00", "11:30", "12:00", "12:30", "14:00", "14:30",
	"15:00", "15:30", "16:00", "16:30", "17:00",
}

func Services() []string {
	return slices.Clone(services)
}

func TimeSlots() []string {
	return slices.Clone(timeSlots)
}

func IsKnownService(name string) bool {
	return slices.Contains(services, name)
}

func IsKnownTimeSlot(slot string) bool {
	return slices.Contains(timeSlots, slot)
}

func IsDateKey(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
