package workers

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/notify"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// ErrNotificationQueueFull is returned when the queue cannot take another
// contact without blocking the request.
var ErrNotificationQueueFull = errors.New("notification queue is full")

const defaultQueueSize = 64

// ContactNotifier hands contact notifications to a background goroutine so
// that the contact request never waits on the mail provider. It is a
// [notify.Notifier] for the service layer and a [Worker] for the server.
type ContactNotifier struct {
	next  notify.Notifier
	queue chan models.Contact

	logger *logger.Logger
}

// NewContactNotifier queues up to size contacts in front of next. A
// non-positive size selects the default.
func NewContactNotifier(next notify.Notifier, size int, logger *logger.Logger) *ContactNotifier {
	if size <= 0 {
		size = defaultQueueSize
	}

	return &ContactNotifier{
		next:   next,
		queue:  make(chan models.Contact, size),
		logger: logger,
	}
}

// NotifyContact enqueues contact without blocking.
func (n *ContactNotifier) NotifyContact(ctx context.Context, contact models.Contact) error {
	select {
	case n.queue <- contact:
		return nil
	default:
		logger.FromContext(ctx).Warn().Str("contact_id", contact.ID).Msg("notification queue is full, dropping notification")
		return ErrNotificationQueueFull
	}
}

// Run delivers queued contacts until ctx is done, then flushes what is
// already queued before returning.
func (n *ContactNotifier) Run(ctx context.Context) {
	n.logger.Info().Msg("contact notifier started")

	for {
		select {
		case contact := <-n.queue:
			n.deliver(contact)
		case <-ctx.Done():
			n.drain()
			n.logger.Info().Msg("contact notifier stopped")
			return
		}
	}
}

func (n *ContactNotifier) drain() {
	for {
		select {
		case contact := <-n.queue:
			n.deliver(contact)
		default:
			return
		}
	}
}

func (n *ContactNotifier) deliver(contact models.Contact) {
	ctx := n.logger.WithContext(context.Background())
	if err := n.next.NotifyContact(ctx, contact); err != nil {
		n.logger.Warn().Err(err).Str("contact_id", contact.ID).Msg("contact notification failed")
	}
}
