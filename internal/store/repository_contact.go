package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type contactRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewContactRepository constructs a relational [ContactRepository].
func NewContactRepository(db *DB, logger *logger.Logger) ContactRepository {
	logger.Debug().Msg("creating contact repository")
	return &contactRepository{
		db:     db,
		logger: logger,
	}
}

func (r *contactRepository) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Insert(contactsTable).
		Columns(contactColumns...).
		Values(contactValues(contact)...).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*contactRepository.CreateContact").Msg("error building query")
		return models.Contact{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*contactRepository.CreateContact").Msg("error inserting contact")
		return models.Contact{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return contact, nil
}

func (r *contactRepository) ListContacts(ctx context.Context) ([]models.Contact, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Select(contactColumns...).
		From(contactsTable).
		OrderBy(newestFirst).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*contactRepository.ListContacts").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*contactRepository.ListContacts").Msg("error querying contacts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	contacts := make([]models.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			log.Err(err).Str("func", "*contactRepository.ListContacts").Msg("error scanning contact")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		contacts = append(contacts, contact)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*contactRepository.ListContacts").Msg("error iterating contacts")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return contacts, nil
}
