package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/brandongraves08/packstack/internal/core/domain"
	"github.com/brandongraves08/packstack/internal/core/ports"
	"github.com/brandongraves08/packstack/pkg/apperror"

	"github.com/google/uuid"
)

// AuthServiceImpl implements the mock account flows against an in-memory
// store. Accounts exist only for the process lifetime; there is no user
// database behind this service.
type AuthServiceImpl struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]*domain.User
	byUsername map[string]uuid.UUID

	hashSvc  ports.HashService
	tokenSvc ports.TokenService
}

// NewAuthService creates the mock auth service.
func NewAuthService(hashSvc ports.HashService, tokenSvc ports.TokenService) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:      make(map[uuid.UUID]*domain.User),
		byUsername: make(map[string]uuid.UUID),
		hashSvc:    hashSvc,
		tokenSvc:   tokenSvc,
	}
}

var _ ports.AuthService = (*AuthServiceImpl)(nil)

// Register creates a new account. Usernames are case-insensitive unique.
func (s *AuthServiceImpl) Register(ctx context.Context, req ports.RegisterRequest) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[username]; exists {
		return nil, apperror.ErrUsernameExists()
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[user.ID] = user
	s.byUsername[username] = user.ID

	return user, nil
}

// Login verifies credentials and issues a JWT.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	s.mu.RLock()
	userID, exists := s.byUsername[strings.ToLower(strings.TrimSpace(username))]
	var user *domain.User
	if exists {
		user = s.users[userID]
	}
	s.mu.RUnlock()

	if user == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	ok, err := s.hashSvc.Verify(password, user.PasswordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(err)
	}
	if !ok {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(user.ID, user.Username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(err)
	}
	return token, expiry, nil
}

// GetProfile returns the account behind a validated token subject.
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		// The account vanished (process restart); the token is stale.
		return nil, apperror.ErrInvalidToken()
	}
	return user, nil
}
