package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/brandongraves08/packstack/internal/core/domain"

	"github.com/google/uuid"
)

// SearchParams holds provider-agnostic search input. Zero values for
// Category and Limit mean the client's defaults apply.
type SearchParams struct {
	Query    string
	Category string
	Limit    int
}

// AmazonCatalog is the provider-A client boundary.
type AmazonCatalog interface {
	SearchProducts(ctx context.Context, params SearchParams) ([]domain.Product, error)
	GetProductDetails(ctx context.Context, asin string) (*domain.Product, error)
}

// WalmartCatalog is the provider-B client boundary. It additionally exposes
// local-store pickup availability, which provider A has no equivalent for.
type WalmartCatalog interface {
	SearchProducts(ctx context.Context, params SearchParams) ([]domain.Product, error)
	GetProductDetails(ctx context.Context, itemID string) (*domain.Product, error)
	CheckStoreAvailability(ctx context.Context, itemID, zipCode string) (json.RawMessage, error)
}

// ComparisonService runs a cross-retailer search and matches results.
type ComparisonService interface {
	Compare(ctx context.Context, keywords string) (*domain.ComparisonResult, error)
}

// ChatMessage is one role-tagged turn sent to the assistant provider.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AssistantService is the opaque completion provider boundary: a prompt and
// a token budget go in, generated text comes out.
type AssistantService interface {
	Chat(ctx context.Context, messages []ChatMessage, maxTokens int) (string, error)
	AnalyzeImage(ctx context.Context, image []byte, mimeType string, prompt string) (string, error)
}

// ContentFilter screens generated or user-submitted text. When the text is
// flagged, the returned string is a fixed refusal message instead of the input.
type ContentFilter interface {
	Check(text string) (flagged bool, out string)
}

// RegisterRequest holds validated input for account registration.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// AuthService defines the mock account flows. Accounts are process-scoped.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(userID uuid.UUID, username string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID   uuid.UUID
	Username string
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// WeatherService answers static forecast lookups.
type WeatherService interface {
	Forecast(location, month string) (*domain.Forecast, error)
}

// SearchCache is an optional short-TTL cache for search and comparison
// payloads. Get returns nil bytes on a miss.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
