package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// EmailNotifier mails notifications through SendGrid. Each kind is routed to
// a fixed inbox (front desk for bookings, HR for applications); kinds
// without a route are skipped.
type EmailNotifier struct {
	client mailSender
	from   *mail.Email
	routes map[Kind]*mail.Email
}

func NewEmailNotifier(apiKey, from string, routes map[Kind]string) *EmailNotifier {
	return newEmailNotifier(sendgrid.NewSendClient(apiKey), from, routes)
}

func newEmailNotifier(client mailSender, from string, routes map[Kind]string) *EmailNotifier {
	to := make(map[Kind]*mail.Email, len(routes))
	for k, addr := range routes {
		if addr == "" {
			continue
		}
		to[k] = mail.NewEmail("", addr)
	}
	return &EmailNotifier{
		client: client,
		from:   mail.NewEmail("Clinic bookings", from),
		routes: to,
	}
}

func (e *EmailNotifier) Notify(ctx context.Context, n Notification) error {
	to, ok := e.routes[n.Kind]
	if !ok {
		return nil
	}

	msg := mail.NewSingleEmailPlainText(e.from, n.Subject, to, n.Text())
	if n.Contact.Email != "" {
		msg.SetReplyTo(mail.NewEmail(n.Contact.Name, n.Contact.Email))
	}

	resp, err := e.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send %s: %w", n.Kind, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send %s: status %d", n.Kind, resp.StatusCode)
	}
	return nil
}
