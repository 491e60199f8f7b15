package llm

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Choices []Choice  `json:"choices"`
	Error   *APIError `json:"error,omitempty"`
}

type Choice struct {
	Message Message `json:"message"`
}

type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Code    any    `json:"code,omitempty"`
}

// NewChatRequest builds the two-message envelope: system first, user second.
func NewChatRequest(model, system, user string) ChatRequest {
	return ChatRequest{
		Model: model,
		Messages: []Message{
			{Role: RoleSystem, Content: system},
			{Role: RoleUser, Content: user},
		},
	}
}

// HandleHTTPError classifies a non-2xx response and logs it.
func HandleHTTPError(statusCode int, body []byte, logger *zap.Logger, provider string) *Error {
	e := FromStatus(statusCode, UpstreamMessage(body))
	logger.Error(provider+" request failed",
		zap.Int("status", statusCode),
		zap.String("category", e.Category.String()),
		zap.String("body", truncate(string(body), 1024)),
	)
	return e
}

// UpstreamMessage pulls error.message out of an error body, if there is one.
func UpstreamMessage(body []byte) string {
	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Error == nil {
		return ""
	}
	return strings.TrimSpace(resp.Error.Message)
}

func ParseChatResponse(body []byte) (*ChatResponse, error) {
	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, InvalidReply(fmt.Errorf("unmarshal response: %w", err))
	}
	return &resp, nil
}

// ExtractContent returns the trimmed content of the first choice.
func ExtractContent(resp *ChatResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", InvalidReply(nil)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", InvalidReply(nil)
	}
	return content, nil
}

// DoRequest sends req and reads the whole body. Failing to get or read a
// response is a network error.
func DoRequest(client *http.Client, req *http.Request) ([]byte, int, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, Network(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, Network(fmt.Errorf("read response: %w", err))
	}

	return body, resp.StatusCode, nil
}

func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
