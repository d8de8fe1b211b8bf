package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because the backend rejected a duplicate e-mail.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a lookup by e-mail or id matches no
	// user.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrProductNotFound is returned when a read, update or delete targets a
	// product id that does not exist.
	ErrProductNotFound = errors.New("product was not found")

	// ErrOrderNotFound is returned when a status update targets an order id
	// that does not exist.
	ErrOrderNotFound = errors.New("order was not found")

	// ErrUnsupportedDriver is returned by [NewStorages] for an unknown
	// storage driver.
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level or document-level operation fails
// before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrMongoOperation wraps any failed MongoDB command.
	ErrMongoOperation = errors.New("mongo operation failed")

	// ErrDecodingDocument is returned when a MongoDB document cannot be
	// decoded into its model.
	ErrDecodingDocument = errors.New("failed to decode document")
)
