package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing key: err = %v", err)
	}

	if err := repo.Set(ctx, "user_name", "Ada"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := repo.Get(ctx, "user_name")
	if err != nil || got != "Ada" {
		t.Fatalf("get = %q, %v", got, err)
	}

	// Upsert replaces in place.
	if err := repo.Set(ctx, "user_name", "Grace"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = repo.Get(ctx, "user_name")
	if err != nil || got != "Grace" {
		t.Fatalf("after overwrite = %q, %v", got, err)
	}

	if err := repo.Delete(ctx, "user_name"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "user_name"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete: err = %v", err)
	}
	// Deleting an absent key is not an error.
	if err := repo.Delete(ctx, "user_name"); err != nil {
		t.Fatalf("double delete: %v", err)
	}
}

func TestMigrateUpIsRepeatable(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestNewSQLiteRepositoryRejectsNilDB(t *testing.T) {
	if _, err := NewSQLiteRepository(nil); err == nil {
		t.Fatal("nil db accepted")
	}
}

func TestStoreOnSQLite(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestRepo(t))

	state := DefaultAppState()
	state.Onboarded = true
	state.UserName = "Ada"
	state.XP = 30
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := store.Load(ctx)
	if !got.Onboarded || got.UserName != "Ada" || got.XP != 30 {
		t.Fatalf("round trip through sqlite: %+v", got)
	}
}
