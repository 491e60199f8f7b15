package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/prompt-optimizer/internal/llm"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "tngtech/deepseek-r1t2-chimera:free"
	DefaultTimeout = 60 * time.Second
	DefaultTitle   = "Prompt Generator"

	// PlaceholderAPIKey is the value shipped in example env files.
	PlaceholderAPIKey = "your_api_key_here"

	providerName = "openrouter"
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	// Referer and Title are sent as HTTP-Referer and X-Title when non-empty.
	Referer string
	Title   string
	// HTTPClient overrides the transport; its Timeout is replaced by Timeout.
	HTTPClient *http.Client
}

type Client struct {
	apiKey  string
	model   string
	baseURL string
	referer string
	title   string
	client  *http.Client
	logger  *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		c := *cfg.HTTPClient
		httpClient = &c
	}
	httpClient.Timeout = cfg.Timeout

	return &Client{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		referer: cfg.Referer,
		title:   cfg.Title,
		client:  httpClient,
		logger:  logger,
	}
}

// Configured reports whether a usable API key was supplied.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.apiKey != PlaceholderAPIKey
}

func (c *Client) Model() string { return c.model }

func (c *Client) Complete(ctx context.Context, system, user string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("panic in openrouter client", zap.Any("panic", r))
			text, err = "", llm.Unknown(fmt.Errorf("%v", r))
		}
	}()

	if !c.Configured() {
		return "", llm.NotConfigured()
	}

	body, err := json.Marshal(llm.NewChatRequest(c.model, system, user))
	if err != nil {
		return "", llm.Unknown(fmt.Errorf("marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", llm.Unknown(fmt.Errorf("create request: %w", err))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		httpReq.Header.Set("X-Title", c.title)
	}

	respBody, statusCode, err := llm.DoRequest(c.client, httpReq)
	if err != nil {
		c.logger.Warn("openrouter request got no response", zap.Error(err))
		return "", err
	}

	if !llm.IsSuccess(statusCode) {
		return "", llm.HandleHTTPError(statusCode, respBody, c.logger, providerName)
	}

	chatResp, err := llm.ParseChatResponse(respBody)
	if err != nil {
		c.logger.Error("openrouter returned malformed body", zap.Error(err))
		return "", err
	}

	if chatResp.Error != nil {
		c.logger.Error("openrouter returned error with success status",
			zap.Int("status", statusCode),
			zap.String("message", chatResp.Error.Message),
		)
	}

	return llm.ExtractContent(chatResp)
}

var _ llm.Client = (*Client)(nil)
