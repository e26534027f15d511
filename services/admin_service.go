package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/MohamedBenMassouda/Survey/models"
	"github.com/MohamedBenMassouda/Survey/utils"
)

type CreateAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type AdminInfo struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

// AdminService provisions administrator accounts and authenticates logins.
type AdminService struct {
	store AdminStore
}

func NewAdminService(store AdminStore) *AdminService {
	return &AdminService{store: store}
}

func (s *AdminService) Create(req CreateAdminRequest) (*AdminInfo, error) {
	email := strings.TrimSpace(req.Email)
	if !isValidEmail(email) {
		return nil, Validation("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, Validation("password must be at least 8 characters")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, Validation("full name is required")
	}

	existing, err := s.store.GetAdminByEmail(email)
	if err != nil {
		return nil, Internal("failed to look up admin", err)
	}
	if existing != nil {
		return nil, Validation("an admin with email %q already exists", email)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, Internal("failed to hash password", err)
	}

	admin := &models.Admin{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		IsActive:     true,
	}
	if err := s.store.CreateAdmin(admin); err != nil {
		return nil, Internal("failed to create admin", err)
	}

	return &AdminInfo{ID: admin.ID, Email: admin.Email, FullName: admin.FullName}, nil
}

// Authenticate verifies credentials and returns a signed JWT. Lookup misses
// and bad passwords share one message; deactivated accounts get their own.
func (s *AdminService) Authenticate(email, password string) (string, error) {
	admin, err := s.store.GetAdminByEmail(strings.TrimSpace(email))
	if err != nil {
		return "", Internal("failed to look up admin", err)
	}
	if admin == nil || !utils.CheckPassword(admin.PasswordHash, password) {
		return "", Unauthorized("invalid email or password")
	}
	if !admin.IsActive {
		return "", Unauthorized("your account has been deactivated, please contact an administrator")
	}

	token, err := utils.GenerateToken(admin.ID.String())
	if err != nil {
		return "", Internal("failed to issue token", err)
	}
	return token, nil
}
