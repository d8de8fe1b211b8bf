package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/notify"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/utils"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type contactService struct {
	contactRepository store.ContactRepository
	notifier          notify.Notifier

	generateID func() string
	now        func() time.Time

	logger *logger.Logger
}

func NewContactService(contactRepository store.ContactRepository, notifier notify.Notifier, logger *logger.Logger) ContactService {
	if notifier == nil {
		notifier = notify.Nop{}
	}

	return &contactService{
		contactRepository: contactRepository,
		notifier:          notifier,
		generateID:        utils.NewUUIDGenerator().Generate,
		now:               time.Now,
		logger:            logger,
	}
}

// SubmitContact stores the message and then notifies the shop owner. A failed
// notification is logged and does not fail the submission.
func (s *contactService) SubmitContact(ctx context.Context, in models.ContactInput) (models.Contact, error) {
	log := logger.FromContext(ctx)

	contact := in.ToContact()
	contact.ID = s.generateID()
	contact.Email = strings.TrimSpace(contact.Email)
	contact.CreatedAt = s.now().UTC()

	created, err := s.contactRepository.CreateContact(ctx, contact)
	if err != nil {
		log.Err(err).Str("func", "*contactService.SubmitContact").Msg("error saving contact message")
		return models.Contact{}, fmt.Errorf("error saving contact message: %w", err)
	}

	if err = s.notifier.NotifyContact(ctx, created); err != nil {
		log.Warn().Err(err).Str("func", "*contactService.SubmitContact").Str("contact_id", created.ID).Msg("contact notification failed")
	}

	return created, nil
}

func (s *contactService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	contacts, err := s.contactRepository.ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}

	return contacts, nil
}
