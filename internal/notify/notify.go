// Package notify delivers booking and application confirmations through
// out-of-band channels. Delivery is best-effort: callers log failures and
// never roll back the record that triggered a notification.
package notify

import (
	"context"
	"errors"
	"strings"
)

type Kind string

const (
	KindBookingCreated       Kind = "booking.created"
	KindApplicationSubmitted Kind = "application.submitted"
)

type Recipient struct {
	Name  string
	Phone string
	Email string
}

type Field struct {
	Label string
	Value string
}

// Notification is addressed to Recipient (the provider, HR) and concerns
// Contact (the patient, the applicant).
type Notification struct {
	Kind      Kind
	Recipient Recipient
	Contact   Recipient
	Subject   string
	Fields    []Field
}

// Text renders the message body, one "Label: Value" line per field.
func (n Notification) Text() string {
	var b strings.Builder
	b.WriteString(n.Subject)
	b.WriteString(":\n")
	for i, f := range n.Fields {
		if i == 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.Label)
		b.WriteString(": ")
		b.WriteString(f.Value)
		if i < len(n.Fields)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Field returns the value of the first field with the given label.
func (n Notification) Field(label string) (string, bool) {
	for _, f := range n.Fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type Func func(ctx context.Context, n Notification) error

func (f Func) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

type nop struct{}

func (nop) Notify(context.Context, Notification) error { return nil }

// Nop discards every notification.
func Nop() Notifier { return nop{} }

// Multi sends to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, next := range m {
		if err := next.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Filter passes only notifications of the listed kinds to next.
func Filter(next Notifier, kinds ...Kind) Notifier {
	return Func(func(ctx context.Context, n Notification) error {
		for _, k := range kinds {
			if n.Kind == k {
				return next.Notify(ctx, n)
			}
		}
		return nil
	})
}
