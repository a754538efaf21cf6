package services

import (
	"context"
	"errors"
	"testing"

	"github.com/TimCalavera/calavera-web/internal/models"
	"github.com/TimCalavera/calavera-web/internal/utils"
)

type fakeAdminRepo struct {
	admins  map[string]*models.Admin
	created []string
}

func (f *fakeAdminRepo) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	admin, ok := f.admins[username]
	if !ok {
		return nil, errors.New("admin tidak ditemukan")
	}
	return admin, nil
}

func (f *fakeAdminRepo) Count(ctx context.Context) (int, error) {
	return len(f.admins), nil
}

func (f *fakeAdminRepo) ReplaceAll(ctx context.Context, username, passwordHash string) error {
	f.admins = map[string]*models.Admin{username: {Username: username, PasswordHash: passwordHash}}
	return nil
}

func (f *fakeAdminRepo) Create(ctx context.Context, username, passwordHash string) error {
	if f.admins == nil {
		f.admins = map[string]*models.Admin{}
	}
	f.admins[username] = &models.Admin{Username: username, PasswordHash: passwordHash}
	f.created = append(f.created, username)
	return nil
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := utils.HashPassword("rahasia")
	if err != nil {
		t.Fatal(err)
	}
	repo := &fakeAdminRepo{admins: map[string]*models.Admin{
		"clv": {ID: 1, Username: "clv", PasswordHash: hash},
	}}
	service := NewAuthService(repo)

	t.Run("valid credentials", func(t *testing.T) {
		admin, err := service.Login(ctx, models.LoginRequest{Username: "clv", Password: "rahasia"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if admin == nil || admin.Username != "clv" {
			t.Errorf("admin = %+v", admin)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		admin, err := service.Login(ctx, models.LoginRequest{Username: "clv", Password: "salah"})
		if err != nil || admin != nil {
			t.Errorf("got admin=%+v err=%v", admin, err)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		admin, err := service.Login(ctx, models.LoginRequest{Username: "bukan", Password: "rahasia"})
		if err != nil || admin != nil {
			t.Errorf("got admin=%+v err=%v", admin, err)
		}
	})
}

func TestEnsureDefaultAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds an empty table", func(t *testing.T) {
		repo := &fakeAdminRepo{}
		service := NewAuthService(repo)

		created, err := service.EnsureDefaultAdmin(ctx, "clv", "calavera")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !created || len(repo.created) != 1 {
			t.Errorf("created=%v repo.created=%v", created, repo.created)
		}

		// Stored hash must verify against the configured password.
		admin := repo.admins["clv"]
		if admin == nil || !utils.VerifyPassword("calavera", admin.PasswordHash) {
			t.Errorf("seeded admin: %+v", admin)
		}
	})

	t.Run("leaves existing accounts alone", func(t *testing.T) {
		repo := &fakeAdminRepo{admins: map[string]*models.Admin{
			"clv": {Username: "clv", PasswordHash: "x"},
		}}
		service := NewAuthService(repo)

		created, err := service.EnsureDefaultAdmin(ctx, "lain", "pw")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created || len(repo.created) != 0 {
			t.Errorf("created=%v repo.created=%v", created, repo.created)
		}
	})
}
