package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tangokultura/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

type UserDBLayer interface {
	CreateUser(user models.User) error
	GetUserByEmail(email string) (*models.User, error)
}

// Service handles registration and login. The configured admin email gets
// the admin role at registration; everyone else is a regular user. This is
// the single authorization mechanism: ownership checks plus the role claim.
type Service struct {
	DB         UserDBLayer
	Secret     string
	TokenTTL   time.Duration
	AdminEmail string
}

func NewService(db UserDBLayer, secret string, ttl time.Duration, adminEmail string) *Service {
	return &Service{
		DB:         db,
		Secret:     secret,
		TokenTTL:   ttl,
		AdminEmail: adminEmail,
	}
}

func (s *Service) Register(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if existing, err := s.DB.GetUserByEmail(email); err == nil && existing != nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleUser
	if s.AdminEmail != "" && strings.EqualFold(email, s.AdminEmail) {
		role = models.RoleAdmin
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if err := s.DB.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *Service) Login(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.DB.GetUserByEmail(email)
	if err != nil || user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := NewToken(user, s.Secret, s.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
