package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/CWN221/Flask-To-Do-List/internal/auth"
	"github.com/CWN221/Flask-To-Do-List/internal/model"
	"github.com/CWN221/Flask-To-Do-List/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidSession is returned when a session token is missing, expired or revoked.
	ErrInvalidSession = errors.New("invalid session")
)

// AuthService handles registration, login and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (sessionToken string, user *model.User, err error)
	Logout(ctx context.Context, sessionToken string) error
	Authenticate(ctx context.Context, sessionToken string) (*auth.SessionClaims, error)
}

type authService struct {
	userRepo     repository.UserRepository
	jwtService   *auth.JWTService
	sessionStore auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, sessionStore auth.SessionStoreInterface) AuthService {
	return &authService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

// Register creates a new user with a bcrypt-hashed password. Passwords are
// never stored in the clear.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user by email and returns a session token. The error
// never distinguishes an unknown email from a wrong password.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	_, token, err := s.jwtService.GenerateSessionToken(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	return token, user, nil
}

// Logout revokes a session token until its natural expiry.
func (s *authService) Logout(ctx context.Context, sessionToken string) error {
	claims, err := s.jwtService.ValidateToken(sessionToken)
	if err != nil {
		return ErrInvalidSession
	}
	if claims.ExpiresAt == nil {
		return ErrInvalidSession
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		// Already expired, nothing to revoke.
		return nil
	}
	return s.sessionStore.RevokeSession(ctx, claims.ID, ttl)
}

// Authenticate validates a session token and confirms it has not been
// revoked by a logout.
func (s *authService) Authenticate(ctx context.Context, sessionToken string) (*auth.SessionClaims, error) {
	claims, err := s.jwtService.ValidateToken(sessionToken)
	if err != nil {
		return nil, ErrInvalidSession
	}

	revoked, err := s.sessionStore.IsSessionRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check session revocation: %w", err)
	}
	if revoked {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
