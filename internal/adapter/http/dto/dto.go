package dto

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"omitempty,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"created_at"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// ProfileResponse is the response body for the profile endpoint.
type ProfileResponse struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ChatMessage is one conversation turn in a chat request.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=system user assistant"`
	Content string `json:"content" binding:"required"`
}

// ChatRequest is the request body for the assistant chat endpoint.
type ChatRequest struct {
	Messages  []ChatMessage `json:"messages" binding:"required,min=1,dive"`
	MaxTokens int           `json:"max_tokens" binding:"omitempty,gt=0,lte=4096"`
}

// ChatResponse is the response body for the assistant chat endpoint.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// AnalyzeResponse is the response body for the image analysis endpoint.
type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
}
