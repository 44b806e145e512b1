// Package user manages back-office accounts: registration, login and
// session revocation for the admin panel.
package user

import (
	"context"
	"fmt"
	"time"

	userRepo "clinicore/database/repository/user"
	"clinicore/models"
	"clinicore/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionDuration = 12 * time.Hour

// UserService defines the business logic for back-office accounts.
type UserService interface {
	// Register creates an account with a hashed password.
	Register(u models.User, password string) (*models.User, error)
	// Login checks credentials and issues a session token.
	Login(email, password string) (*models.User, string, error)
	// ChangePassword verifies the current password and sets a new one.
	ChangePassword(id, currentPassword, newPassword string) error
	// Revoke invalidates the account's current session.
	Revoke(id string) error
	// GetByID retrieves one account without its password hash.
	GetByID(id string) (*models.User, error)
	// GetAll lists all accounts.
	GetAll() ([]models.User, error)
	// SetActive enables or disables an account.
	SetActive(id string, active bool) error
	// Delete removes an account.
	Delete(id string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// safeProjection excludes the password hash from reads that feed API
// responses.
var safeProjection = bson.M{"password": 0}

// Register creates an account with a hashed password.
func (s *DefaultUserService) Register(u models.User, password string) (*models.User, error) {
	if u.Email == "" || u.Name == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	switch u.Role {
	case models.RoleAdmin, models.RoleReception, models.RoleTherapist:
	default:
		return nil, fmt.Errorf("unknown role %q", u.Role)
	}
	if u.Role == models.RoleTherapist && u.TherapistID == "" {
		return nil, fmt.Errorf("therapist accounts must reference a therapist record")
	}

	existing, err := s.Repo.GetByEmailWithProjection(u.Email, bson.M{"id": 1})
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing account: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("account with email %s already exists", u.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u.ID = uuid.New().String()
	u.Password = string(hashed)
	u.Active = true
	if err := s.Repo.Create(&u); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	u.Password = ""
	return &u, nil
}

// Login checks credentials and issues a session token. The token's hash
// is stored on the account so a later revocation kills the session.
func (s *DefaultUserService) Login(email, password string) (*models.User, string, error) {
	account, err := s.Repo.GetByEmailWithProjection(email, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch account: %w", err)
	}
	if account == nil {
		return nil, "", fmt.Errorf("invalid email or password")
	}
	if !account.Active {
		return nil, "", fmt.Errorf("account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(account.ID, account.Email, string(account.Role), sessionDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session token: %w", err)
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(account.ID, tokenHash); err != nil {
		return nil, "", fmt.Errorf("failed to persist session: %w", err)
	}
	cacheTokenHash(account.ID, tokenHash)

	account.Password = ""
	account.TokenHash = ""
	return account, token, nil
}

// ChangePassword verifies the current password and sets a new one. The
// session is revoked so the caller must log in again.
func (s *DefaultUserService) ChangePassword(id, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	account, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch account: %w", err)
	}
	if account == nil {
		return fmt.Errorf("account with id %s not found", id)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	account.Password = string(hashed)
	if err := s.Repo.Update(account); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return s.Revoke(id)
}

// Revoke invalidates the account's current session.
func (s *DefaultUserService) Revoke(id string) error {
	if err := s.Repo.SetTokenHash(id, ""); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	cacheTokenHash(id, "")
	return nil
}

// GetByID retrieves one account without its password hash.
func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	account, err := s.Repo.GetByIDWithProjection(id, safeProjection)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account with id %s not found", id)
	}
	return account, nil
}

// GetAll lists all accounts.
func (s *DefaultUserService) GetAll() ([]models.User, error) {
	accounts, err := s.Repo.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		accounts[i].Password = ""
		accounts[i].TokenHash = ""
	}
	return accounts, nil
}

// SetActive enables or disables an account. Disabling also revokes the
// session.
func (s *DefaultUserService) SetActive(id string, active bool) error {
	account, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch account: %w", err)
	}
	if account == nil {
		return fmt.Errorf("account with id %s not found", id)
	}

	account.Active = active
	if err := s.Repo.Update(account); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if !active {
		return s.Revoke(id)
	}
	return nil
}

// Delete removes an account.
func (s *DefaultUserService) Delete(id string) error {
	return s.Repo.Delete(id)
}

// cacheTokenHash mirrors the session hash into the auth cache so the
// auth middleware avoids a database read per request. Failures fall
// back to the database copy.
func cacheTokenHash(id, tokenHash string) {
	client := utils.AuthCacheClient
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := "session:" + id
	var err error
	if tokenHash == "" {
		err = client.Del(ctx, key).Err()
	} else {
		err = client.Set(ctx, key, tokenHash, sessionDuration).Err()
	}
	if err != nil {
		zap.L().Warn("auth cache update failed", zap.String("userId", id), zap.Error(err))
	}
}
