package accesslog

import (
	"path/filepath"
	"testing"
)

func TestOpenCreatesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, err := s.db.Exec("SELECT id, occurred_at, remote_addr, method, path, status_code FROM access_log"); err != nil {
		t.Fatalf("access_log table not usable: %v", err)
	}
}

func TestRecordInsertsRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Record("127.0.0.1:54321", "GET", "/index.html", "200"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	var count int
	row := s.db.QueryRow("SELECT COUNT(*) FROM access_log WHERE remote_addr = ? AND path = ?", "127.0.0.1:54321", "/index.html")
	if err := row.Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestRecordMultipleRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	for i := 0; i < 3; i++ {
		if err := s.Record("10.0.0.1:1111", "POST", "/upload/", "200"); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM access_log").Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 rows, got %d", count)
	}
}

func TestOpenReopenReusesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.db")
	s1, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s1.Record("1.2.3.4:1", "GET", "/", "200"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen Open: %v", err)
	}
	defer s2.Close()

	var count int
	if err := s2.db.QueryRow("SELECT COUNT(*) FROM access_log").Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row to survive reopen, got %d", count)
	}
}
