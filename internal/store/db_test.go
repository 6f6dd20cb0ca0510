package store

import "testing"

// A DSN that cannot be parsed must yield no handle at all. Callers rely
// on the nil return to fail fast instead of running degraded with a
// handle that would panic on first use.
func TestNewDBMalformedDSN(t *testing.T) {
	db, err := NewDB("://not-a-dsn")
	if err == nil {
		t.Fatal("NewDB() should fail on a malformed DSN")
	}
	if db != nil {
		t.Errorf("NewDB() = %+v, want nil on malformed DSN", db)
	}
}

func TestDBCloseNilSafe(t *testing.T) {
	var db *DB
	if err := db.Close(); err != nil {
		t.Errorf("Close() on nil = %v, want nil", err)
	}
	if err := (&DB{}).Close(); err != nil {
		t.Errorf("Close() on empty = %v, want nil", err)
	}
}
