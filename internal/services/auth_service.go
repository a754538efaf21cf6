package services

import (
	"context"

	"github.com/TimCalavera/calavera-web/internal/models"
	"github.com/TimCalavera/calavera-web/internal/repositories"
	"github.com/TimCalavera/calavera-web/internal/utils"
)

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Admin, error)
	EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error)
}

type authService struct {
	adminRepo repositories.AdminRepository
}

func NewAuthService(adminRepo repositories.AdminRepository) AuthService {
	return &authService{adminRepo: adminRepo}
}

// Login returns the admin on success and nil on bad credentials. The caller
// shows the same message for an unknown username and a wrong password.
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, nil
	}

	if !utils.VerifyPassword(req.Password, admin.PasswordHash) {
		return nil, nil
	}

	return admin, nil
}

// EnsureDefaultAdmin seeds the initial account when the admin table is empty.
// It reports whether a row was created.
func (s *authService) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}

	if err := s.adminRepo.Create(ctx, username, hash); err != nil {
		return false, err
	}
	return true, nil
}
