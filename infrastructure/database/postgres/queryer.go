package postgres

import (
	"database/sql"
)

// Queryer is the query surface repositories depend on; satisfied by both
// *Connection and *sql.Tx.
type Queryer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}
