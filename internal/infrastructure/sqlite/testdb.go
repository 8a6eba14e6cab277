package sqlite

import (
	"database/sql"
	"testing"
)

// NewTestDB base en memoria con el esquema aplicado; se cierra al terminar el test.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("abrir base de test: %v", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		t.Fatalf("esquema de test: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
