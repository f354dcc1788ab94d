package notify

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
)

// LogNotifier writes notifications to the structured log. Notifications
// addressed to a phone also carry a wa.me link staff can open to forward
// the message on WhatsApp.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log.With(slog.String("component", "notify.log"))}
}

func (l *LogNotifier) Notify(ctx context.Context, n Notification) error {
	args := []any{
		slog.String("kind", string(n.Kind)),
		slog.String("recipient", n.Recipient.Name),
		slog.String("text", n.Text()),
	}
	if n.Recipient.Phone != "" {
		args = append(args, slog.String("whatsapp_url", WhatsAppLink(n.Recipient.Phone, n.Text())))
	}
	l.log.InfoContext(ctx, "notification", args...)
	return nil
}

// WhatsAppLink builds a click-to-chat URL for phone with text prefilled.
func WhatsAppLink(phone, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return "https://wa.me/" + digits + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
