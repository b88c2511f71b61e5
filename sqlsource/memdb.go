package sqlsource

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"
)

// Table is an in-memory table served by NewTableDB.
type Table struct {
	Columns []string
	Rows    [][]any
}

// NewTableDB returns a read-only database serving tables by name.
// It supports queries of the form
//
//	SELECT * FROM name
//	SELECT col1, "col2" FROM name
//
// without placeholders. Cell values must be valid driver values
// or implement driver.Valuer.
func NewTableDB(tables map[string]*Table) *sql.DB {
	return sql.OpenDB(database{tables: tables})
}

type database struct {
	tables map[string]*Table
}

func (c database) Connect(context.Context) (driver.Conn, error) {
	return c, nil
}

func (c database) Driver() driver.Driver {
	return c
}

func (c database) Open(string) (driver.Conn, error) {
	return c, nil
}

func (c database) Prepare(query string) (driver.Stmt, error) {
	return newStmt(c.tables, query)
}

func (database) Close() error {
	return nil
}

func (c database) Begin() (driver.Tx, error) {
	return c, nil
}

func (database) Commit() error {
	return nil
}

func (database) Rollback() error {
	return nil
}

var _ driver.Stmt = new(stmt)

type stmt struct {
	table *Table
	// columnMapping maps result columns to table columns,
	// nil selects all table columns.
	columnMapping []int
}

func newStmt(tables map[string]*Table, query string) (*stmt, error) {
	queryColumns, name, err := parseQuery(query)
	if err != nil {
		return nil, err
	}
	table := tables[name]
	if table == nil {
		return nil, fmt.Errorf("table %q not found", name)
	}
	if len(queryColumns) == 1 && queryColumns[0] == "*" {
		return &stmt{table: table}, nil
	}
	mapping := make([]int, len(queryColumns))
	for i, column := range queryColumns {
		mapping[i] = slices.Index(table.Columns, column)
		if mapping[i] == -1 {
			return nil, fmt.Errorf("column %q not found in table %q", column, name)
		}
	}
	return &stmt{table: table, columnMapping: mapping}, nil
}

func (s *stmt) Close() error { return nil }

func (s *stmt) NumInput() int { return 0 }

func (s *stmt) Exec(args []driver.Value) (driver.Result, error) {
	return nil, errors.New("Exec not implemented")
}

func (s *stmt) Query(args []driver.Value) (driver.Rows, error) {
	return &driverRows{stmt: s}, nil
}

var _ driver.Rows = new(driverRows)

type driverRows struct {
	stmt     *stmt
	rowIndex int
}

func (r *driverRows) Columns() []string {
	if r.stmt.columnMapping == nil {
		return r.stmt.table.Columns
	}
	columns := make([]string, len(r.stmt.columnMapping))
	for i, col := range r.stmt.columnMapping {
		columns[i] = r.stmt.table.Columns[col]
	}
	return columns
}

func (r *driverRows) Close() error {
	r.rowIndex = -1
	return nil
}

func (r *driverRows) Next(dest []driver.Value) (err error) {
	rows := r.stmt.table.Rows
	if r.rowIndex < 0 || r.rowIndex >= len(rows) {
		return io.EOF
	}
	row := rows[r.rowIndex]
	for i := range dest {
		col := i
		if r.stmt.columnMapping != nil {
			col = r.stmt.columnMapping[i]
		}
		var val any
		if col < len(row) {
			val = row[col]
		}
		dest[i], err = driverValue(val)
		if err != nil {
			return err
		}
	}
	r.rowIndex++
	return nil
}

func driverValue(val any) (driver.Value, error) {
	if valuer, ok := val.(driver.Valuer); ok {
		return valuer.Value()
	}
	if !driver.IsValue(val) {
		return nil, fmt.Errorf("value %#v is not a driver.Value", val)
	}
	return val, nil
}

var queryRegexp = regexp.MustCompile(`^(?:SELECT|select)\s+(\*|(?:[a-zA-Z]\w*|"[a-zA-Z]\w*")(?:\s*,\s*[a-zA-Z]\w*|\s*,\s*"[a-zA-Z]\w*")*)\s+(?:FROM|from)\s+([a-zA-Z][\w.]*|"[a-zA-Z][\w.]*")(?:\s*;)*$`)

func parseQuery(query string) (columns []string, table string, err error) {
	query = strings.TrimSpace(query)
	m := queryRegexp.FindStringSubmatch(query)
	if len(m) != 3 {
		return nil, "", fmt.Errorf("invalid query %q", query)
	}
	columns = strings.Split(m[1], ",")
	for i := range columns {
		columns[i] = unquote(strings.TrimSpace(columns[i]))
	}
	return columns, unquote(m[2]), nil
}

func unquote(str string) string {
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		return str[1 : len(str)-1]
	}
	return str
}
