package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/mock"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type fakeNotifier struct {
	err  error
	sent []models.Contact
}

func (f *fakeNotifier) NotifyContact(_ context.Context, c models.Contact) error {
	f.sent = append(f.sent, c)
	return f.err
}

func newTestContactService(t *testing.T, notifier *fakeNotifier) (ContactService, *mock.MockContactRepository) {
	t.Helper()
	repo := mock.NewMockContactRepository(gomock.NewController(t))

	svc := NewContactService(repo, notifier, logger.Nop()).(*contactService)
	svc.generateID = func() string { return "c-1" }
	svc.now = func() time.Time { return fixedNow }

	return NewContactValidationService().Wrap(svc), repo
}

func contactInput() models.ContactInput {
	return models.ContactInput{Name: "Ana", Email: " ana@x.com ", Message: "Olá"}
}

func TestContactService_SubmitContact(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, repo := newTestContactService(t, notifier)

	repo.EXPECT().CreateContact(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c models.Contact) (models.Contact, error) { return c, nil },
	)

	contact, err := svc.SubmitContact(context.Background(), contactInput())

	require.NoError(t, err)
	assert.Equal(t, "c-1", contact.ID)
	assert.Equal(t, "ana@x.com", contact.Email)
	assert.Equal(t, fixedNow, contact.CreatedAt)
	assert.Equal(t, []models.Contact{contact}, notifier.sent)
}

func TestContactService_SubmitContact_NotifyFailureIsNotFatal(t *testing.T) {
	svc, repo := newTestContactService(t, &fakeNotifier{err: errors.New("postmark down")})

	repo.EXPECT().CreateContact(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c models.Contact) (models.Contact, error) { return c, nil },
	)

	_, err := svc.SubmitContact(context.Background(), contactInput())

	assert.NoError(t, err)
}

func TestContactService_SubmitContact_StoreFailureSkipsNotify(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, repo := newTestContactService(t, notifier)
	boom := errors.New("disk full")

	repo.EXPECT().CreateContact(gomock.Any(), gomock.Any()).Return(models.Contact{}, boom)

	_, err := svc.SubmitContact(context.Background(), contactInput())

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, notifier.sent)
}

func TestContactService_SubmitContact_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.ContactInput)
	}{
		{"empty name", func(in *models.ContactInput) { in.Name = "" }},
		{"bad e-mail", func(in *models.ContactInput) { in.Email = "ana" }},
		{"empty message", func(in *models.ContactInput) { in.Message = "  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestContactService(t, &fakeNotifier{})
			in := contactInput()
			tt.mutate(&in)

			_, err := svc.SubmitContact(context.Background(), in)

			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestContactService_ListContacts(t *testing.T) {
	svc, repo := newTestContactService(t, nil)
	repo.EXPECT().ListContacts(gomock.Any()).Return([]models.Contact{{ID: "c-1"}}, nil)

	contacts, err := svc.ListContacts(context.Background())

	require.NoError(t, err)
	assert.Len(t, contacts, 1)
}
