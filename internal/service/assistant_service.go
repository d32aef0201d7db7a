package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/brandongraves08/packstack/config"
	"github.com/brandongraves08/packstack/internal/core/ports"
	"github.com/brandongraves08/packstack/pkg/apperror"

	"github.com/rs/zerolog"
)

const chatCompletionsPath = "/chat/completions"

// OpenAIAssistant is the opaque completion provider client. It speaks the
// chat-completions wire format for both plain chat and image analysis; the
// gateway never interprets the generated text beyond content filtering.
type OpenAIAssistant struct {
	cfg  config.OpenAIConfig
	http *RetryClient
	log  zerolog.Logger
}

// NewOpenAIAssistant creates an assistant client.
func NewOpenAIAssistant(cfg config.OpenAIConfig, rc *RetryClient, log zerolog.Logger) *OpenAIAssistant {
	return &OpenAIAssistant{
		cfg:  cfg,
		http: rc,
		log:  log.With().Str("provider", "openai").Logger(),
	}
}

var _ ports.AssistantService = (*OpenAIAssistant)(nil)

// Chat sends a role-tagged message list and returns the generated text.
func (a *OpenAIAssistant) Chat(ctx context.Context, messages []ports.ChatMessage, maxTokens int) (string, error) {
	if !a.cfg.Configured() {
		return "", apperror.ErrProviderNotConfigured("OpenAI")
	}

	wireMessages := make([]chatWireMessage, 0, len(messages))
	for _, m := range messages {
		wireMessages = append(wireMessages, chatWireMessage{Role: m.Role, Content: m.Content})
	}
	return a.complete(ctx, wireMessages, maxTokens)
}

// AnalyzeImage sends an image alongside a text prompt as one multimodal user
// message and returns the generated description.
func (a *OpenAIAssistant) AnalyzeImage(ctx context.Context, image []byte, mimeType string, prompt string) (string, error) {
	if !a.cfg.Configured() {
		return "", apperror.ErrProviderNotConfigured("OpenAI")
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	message := chatWireMessage{
		Role: "user",
		Content: []contentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
		},
	}
	return a.complete(ctx, []chatWireMessage{message}, 500)
}

func (a *OpenAIAssistant) complete(ctx context.Context, messages []chatWireMessage, maxTokens int) (string, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:     a.cfg.Model,
		Messages:  messages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", apperror.InternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+chatCompletionsPath, bytes.NewReader(body))
	if err != nil {
		return "", apperror.InternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)

	resp, err := a.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", apperror.ErrVendor("OpenAI", resp.StatusCode, string(raw))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", apperror.ErrProviderResponse("OpenAI", err)
	}
	if len(completion.Choices) == 0 {
		return "", apperror.ErrProviderResponse("OpenAI", fmt.Errorf("response contained no choices"))
	}
	return completion.Choices[0].Message.Content, nil
}

// --- Chat-completions wire format.

type chatCompletionRequest struct {
	Model     string            `json:"model"`
	Messages  []chatWireMessage `json:"messages"`
	MaxTokens int               `json:"max_tokens,omitempty"`
}

// chatWireMessage carries either a plain string or multimodal content parts.
type chatWireMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
