package handler

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/brandongraves08/packstack/internal/adapter/http/dto"
	"github.com/brandongraves08/packstack/internal/core/ports"
	"github.com/brandongraves08/packstack/pkg/apperror"
	"github.com/brandongraves08/packstack/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultChatMaxTokens = 1000

	defaultAnalyzePrompt = "Identify the outdoor gear visible in this photo. " +
		"List each item with a short description and note anything that looks missing for a typical trip."
)

// imageMIMETypes maps the accepted upload extensions to their MIME type.
var imageMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// AssistantHandler handles the chat and image analysis endpoints. All user
// input passes through the content filter before reaching the assistant, and
// generated text passes through it again on the way out.
type AssistantHandler struct {
	assistantSvc ports.AssistantService
	filter       ports.ContentFilter
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(assistantSvc ports.AssistantService, filter ports.ContentFilter) *AssistantHandler {
	return &AssistantHandler{assistantSvc: assistantSvc, filter: filter}
}

// Chat handles POST /api/v1/chat.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	messages := make([]ports.ChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.Role == "user" {
			if flagged, _ := h.filter.Check(m.Content); flagged {
				response.Error(c, apperror.ErrContentFiltered())
				return
			}
		}
		messages = append(messages, ports.ChatMessage{Role: m.Role, Content: m.Content})
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultChatMaxTokens
	}

	reply, err := h.assistantSvc.Chat(c.Request.Context(), messages, maxTokens)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Flagged output is replaced with the refusal message, not rejected.
	_, reply = h.filter.Check(reply)
	response.OK(c, dto.ChatResponse{Reply: reply})
}

// Analyze handles POST /api/v1/analyze: a multipart image upload analyzed by
// the vision-capable assistant.
func (h *AssistantHandler) Analyze(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, apperror.Validation("image file is required"))
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	mimeType, ok := imageMIMETypes[ext]
	if !ok {
		response.Error(c, apperror.Validation("unsupported image type, use png or jpeg"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	prompt := c.PostForm("prompt")
	if prompt == "" {
		prompt = defaultAnalyzePrompt
	} else if flagged, _ := h.filter.Check(prompt); flagged {
		response.Error(c, apperror.ErrContentFiltered())
		return
	}

	analysis, err := h.assistantSvc.AnalyzeImage(c.Request.Context(), image, mimeType, prompt)
	if err != nil {
		response.Error(c, err)
		return
	}

	_, analysis = h.filter.Check(analysis)
	response.OK(c, dto.AnalyzeResponse{Analysis: analysis})
}
