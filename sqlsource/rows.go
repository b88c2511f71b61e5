package sqlsource

import (
	"context"
	"database/sql"
)

var (
	_ Rows    = &sql.Rows{}
	_ Queryer = &sql.DB{}
	_ Queryer = &sql.Tx{}
	_ Queryer = &sql.Conn{}
)

// Rows abstracts the methods of database/sql.Rows
// needed to iterate a result set.
//
// The interface is compatible with *sql.Rows, so any function
// accepting Rows can work with real database query results.
type Rows interface {
	// Columns returns the names of the columns in the result set.
	Columns() ([]string, error)

	// Scan copies the column values from the current row into the variables
	// pointed to by dest.
	// Scan must be called after Next returned true.
	Scan(dest ...any) error

	// Close closes the Rows, preventing further enumeration.
	// Close is idempotent and does not affect the result of Err.
	Close() error

	// Next prepares the next result row for reading with Scan.
	// It returns false if there are no more rows or an error occurred,
	// use Err to distinguish between the two.
	Next() bool

	// Err returns the error, if any, that was encountered during iteration.
	Err() error
}

// Queryer is implemented by *sql.DB, *sql.Tx and *sql.Conn.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
