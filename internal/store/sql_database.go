package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/migrations"
)

// ErrorClassificator decides how a driver error should be treated by the
// repositories.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB is a relational connection shared by the SQL repositories. The squirrel
// builder carries the placeholder format of the dialect, so the repositories
// stay driver-agnostic.
type DB struct {
	*sql.DB
	builder            sq.StatementBuilderType
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect string, classifier ErrorClassificator, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == migrations.DialectPostgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:                 conn,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		dialect:            dialect,
		errorClassificator: classifier,
		logger:             log,
	}
}

// Migrate applies the embedded schema using the dialect of the connection.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Ping implements [HealthChecker].
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

// isUniqueViolation reports whether err is a unique constraint failure of the
// underlying driver.
func (db *DB) isUniqueViolation(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == UniqueViolation
}
