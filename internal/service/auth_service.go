package service

import (
	"context"
	"time"

	"github.com/mahfuzul873/m873/internal/model"
	appErr "github.com/mahfuzul873/m873/internal/pkg/errors"
	"github.com/mahfuzul873/m873/internal/pkg/jwt"
	"github.com/mahfuzul873/m873/internal/pkg/password"
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type RoleStore interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
}

// AuthService implements the two-step owner login: password first, then a
// one-time code. Every failure along the way maps to the same ErrUnauthorized
// so the caller cannot tell which factor was wrong.
type AuthService struct {
	users     UserStore
	roles     RoleStore
	otps      *OTPService
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users UserStore, roles RoleStore, otps *OTPService, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, roles: roles, otps: otps, jwtSecret: secret, jwtTTL: ttl}
}

// StartLogin checks the password factor and, on success, issues an OTP for
// the email. The OTP issue is returned so the HTTP layer can expose the
// expiry; the code itself travels by email.
func (s *AuthService) StartLogin(ctx context.Context, email, plainPassword string) (*OTPIssue, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, appErr.ErrUnauthorized
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, appErr.ErrUnauthorized
	}
	return s.otps.Request(ctx, user.Email)
}

// ResendOTP re-issues the code without the password factor, mirroring the
// resend button on the login form. The cooldown inside the OTP service stops
// abuse.
func (s *AuthService) ResendOTP(ctx context.Context, email string) (*OTPIssue, error) {
	return s.otps.Request(ctx, email)
}

// CompleteLogin verifies the OTP, requires the owner role and mints a session
// token.
func (s *AuthService) CompleteLogin(ctx context.Context, email, code string) (*model.User, string, error) {
	ok, err := s.otps.Verify(ctx, email, code)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", appErr.ErrUnauthorized
	}
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	isOwner, err := s.roles.HasRole(ctx, user.ID, model.RoleOwner)
	if err != nil {
		return nil, "", err
	}
	if !isOwner {
		return nil, "", appErr.ErrUnauthorized
	}
	token, err := jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) IsOwner(ctx context.Context, userID string) (bool, error) {
	return s.roles.HasRole(ctx, userID, model.RoleOwner)
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}
