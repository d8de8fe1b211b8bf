// Package notify tells the shop owner about new contact form messages.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/keighl/postmark"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// ErrSendFailed wraps any Postmark delivery failure.
var ErrSendFailed = errors.New("failed to send notification")

// Notifier delivers contact messages to the shop owner.
type Notifier interface {
	NotifyContact(ctx context.Context, contact models.Contact) error
}

// emailSender is the subset of *postmark.Client in use.
type emailSender interface {
	SendEmail(email postmark.Email) (postmark.EmailResponse, error)
}

// NewNotifier returns a Postmark notifier, or a no-op one when no server
// token is configured.
func NewNotifier(cfg config.Mail, log *logger.Logger) Notifier {
	if cfg.PostmarkServerToken == "" {
		log.Info().Str("func", "NewNotifier").Msg("contact notifications disabled")
		return Nop{}
	}

	return &postmarkNotifier{
		client: postmark.NewClient(cfg.PostmarkServerToken, ""),
		from:   cfg.From,
		to:     cfg.NotifyTo,
	}
}

// Nop discards every notification.
type Nop struct{}

func (Nop) NotifyContact(context.Context, models.Contact) error { return nil }

type postmarkNotifier struct {
	client emailSender
	from   string
	to     string
}

// NotifyContact sends one e-mail per message. Reply-To is the sender of the
// message so the owner can answer straight from the mailbox.
func (n *postmarkNotifier) NotifyContact(ctx context.Context, contact models.Contact) error {
	email := postmark.Email{
		From:     n.from,
		To:       n.to,
		ReplyTo:  contact.Email,
		Subject:  fmt.Sprintf("New contact message from %s", contact.Name),
		TextBody: contactText(contact),
		HtmlBody: contactHTML(contact),
		Tag:      "contact",
	}

	resp, err := n.client.SendEmail(email)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postmarkNotifier.NotifyContact").Str("contact_id", contact.ID).Msg("error sending e-mail")
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	if resp.ErrorCode != 0 {
		logger.FromContext(ctx).Error().Any("code", resp.ErrorCode).Str("message", resp.Message).Str("contact_id", contact.ID).Msg("postmark rejected e-mail")
		return fmt.Errorf("%w: postmark code %d: %s", ErrSendFailed, resp.ErrorCode, resp.Message)
	}

	return nil
}

func contactText(c models.Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\n", c.Name, c.Email)
	if c.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	}
	fmt.Fprintf(&b, "\n%s\n", c.Message)
	return b.String()
}

func contactHTML(c models.Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s<br><strong>Email:</strong> %s", html.EscapeString(c.Name), html.EscapeString(c.Email))
	if c.Phone != "" {
		fmt.Fprintf(&b, "<br><strong>Phone:</strong> %s", html.EscapeString(c.Phone))
	}
	fmt.Fprintf(&b, "</p><p>%s</p>", strings.ReplaceAll(html.EscapeString(c.Message), "\n", "<br>"))
	return b.String()
}
