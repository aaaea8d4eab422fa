package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/joseph-ayodele/report-filer/constants"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), Config{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "nested", "registry.db"),
	}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

func TestDropRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewDropRepository(db, nil)

	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	// idempotent
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema twice: %v", err)
	}

	if _, err := repo.GetFiledByDocumentHash(ctx, "abc"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	filed := &DropRecord{
		ManifestID:   7,
		Status:       constants.DropStatusFiled,
		DocumentHash: "abc",
		AudioHash:    "def",
		PatientName:  "Juan Perez",
		Folder:       "/tree/x",
		CreatedAt:    base,
	}
	if err := repo.Create(ctx, filed); err != nil {
		t.Fatalf("create: %v", err)
	}
	rejected := &DropRecord{
		Status:       constants.DropStatusRejected,
		DocumentHash: "zzz",
		Reason:       "missing field",
		CreatedAt:    base.Add(time.Minute),
	}
	if err := repo.Create(ctx, rejected); err != nil {
		t.Fatalf("create rejected: %v", err)
	}

	got, err := repo.GetFiledByDocumentHash(ctx, "abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != filed.ID || got.ManifestID != 7 || got.PatientName != "Juan Perez" || !got.CreatedAt.Equal(base) {
		t.Fatalf("unexpected record %+v", got)
	}
	if _, err := repo.GetFiledByDocumentHash(ctx, "zzz"); !IsNotFound(err) {
		t.Fatalf("rejected drop must not count as filed, got %v", err)
	}

	list, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != rejected.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if list, _ := repo.List(ctx, 1); len(list) != 1 {
		t.Fatalf("limit ignored: %d rows", len(list))
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts[constants.DropStatusFiled] != 1 || counts[constants.DropStatusRejected] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Config{Driver: "oracle"}, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestHealthCheck(t *testing.T) {
	db := openTestDB(t)
	if err := db.HealthCheck(context.Background(), time.Second); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func TestSQLitePath(t *testing.T) {
	cases := map[string]string{
		"./data/registry.db":       "./data/registry.db",
		"file:/tmp/r.db?_pragma=x": "/tmp/r.db",
		":memory:":                 "",
		"file:x?mode=memory":       "",
	}
	for dsn, want := range cases {
		if got := sqlitePath(dsn); got != want {
			t.Errorf("sqlitePath(%q) = %q, want %q", dsn, got, want)
		}
	}
}
