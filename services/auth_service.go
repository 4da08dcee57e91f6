package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// AuthService authenticates the reviewer account. There is a single admin,
// configured by email and bcrypt password hash; all mutating review and
// maintenance routes require its token.
type AuthService interface {
	SignIn(ctx context.Context, input SignInInput) (string, error)
}

type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authService struct {
	adminEmail        string
	adminPasswordHash string
	jwtSecret         []byte
	now               func() time.Time
}

func NewAuthService(adminEmail, adminPasswordHash string, jwtSecret []byte) AuthService {
	return &authService{
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         jwtSecret,
		now:               time.Now,
	}
}

func (s *authService) SignIn(ctx context.Context, input SignInInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return "", ErrInvalidCredentials
	}
	if !strings.EqualFold(email, s.adminEmail) {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(input.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.MapClaims{
		"email": email,
		"role":  "admin",
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}
	return signed, nil
}
