package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/msomdec/pokedex/internal/domain"
	"github.com/msomdec/pokedex/internal/repository/sqlite"
)

func ptr[T any](v T) *T { return &v }

func TestUserRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	dob := time.Date(1996, 2, 27, 0, 0, 0, 0, time.UTC)
	user := &domain.User{
		ID:           42,
		FirstName:    "Ash",
		LastName:     "Ketchum",
		DateOfBirth:  &dob,
		Email:        "ash@example.com",
		PasswordHash: "hashedpw",
	}

	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID != 42 {
		t.Fatalf("expected caller-supplied id 42, got %d", user.ID)
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	found, err := repo.GetByID(ctx, 42)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.DateOfBirth == nil || !found.DateOfBirth.Equal(dob) {
		t.Fatalf("expected dob %v, got %v", dob, found.DateOfBirth)
	}
	if found.MiddleName != "" {
		t.Fatalf("expected empty middle name, got %q", found.MiddleName)
	}
}

func TestUserRepository_Create_AssignsID(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)

	user := &domain.User{Email: "auto@example.com", PasswordHash: "hash"}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected store-assigned id")
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Email: "dup@example.com", FirstName: "First", PasswordHash: "hash1"}); err != nil {
		t.Fatalf("Create user1: %v", err)
	}

	err := repo.Create(ctx, &domain.User{Email: "dup@example.com", FirstName: "Second", PasswordHash: "hash2"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// The original row must be untouched.
	found, err := repo.GetByEmail(ctx, "dup@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if found.FirstName != "First" || found.PasswordHash != "hash1" {
		t.Fatalf("existing row was overwritten: %+v", found)
	}
}

func TestUserRepository_Create_DuplicateID(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{ID: 7, Email: "a@example.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := repo.Create(ctx, &domain.User{ID: 7, Email: "b@example.com", PasswordHash: "h"})
	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Email: "byemail@example.com", PasswordHash: "hash"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.GetByEmail(ctx, "byemail@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected id %d, got %d", user.ID, found.ID)
	}

	_, err = repo.GetByEmail(ctx, "nonexistent@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_Update_Partial(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{FirstName: "Misty", LastName: "Waterflower", Email: "misty@example.com", PasswordHash: "hash", Phone: "555"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := repo.Update(ctx, user.ID, domain.UserPatch{Phone: ptr("777"), Gender: ptr("female")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Phone != "777" || updated.Gender != "female" {
		t.Fatalf("patched fields not applied: %+v", updated)
	}
	if updated.FirstName != "Misty" || updated.LastName != "Waterflower" || updated.PasswordHash != "hash" {
		t.Fatalf("unpatched fields changed: %+v", updated)
	}
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)

	_, err := repo.Update(context.Background(), 12345, domain.UserPatch{Phone: ptr("1")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_Update_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	a := &domain.User{Email: "a@example.com", PasswordHash: "h"}
	b := &domain.User{Email: "b@example.com", PasswordHash: "h"}
	for _, u := range []*domain.User{a, b} {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	_, err := repo.Update(ctx, b.ID, domain.UserPatch{Email: ptr("a@example.com")})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Email: "gone@example.com", PasswordHash: "h"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, user.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
