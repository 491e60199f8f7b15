package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kitbuilder587/prompt-optimizer/internal/domain"
	"github.com/kitbuilder587/prompt-optimizer/internal/llm"
	"github.com/kitbuilder587/prompt-optimizer/internal/metrics"
	"github.com/kitbuilder587/prompt-optimizer/internal/ratelimit"
	"github.com/kitbuilder587/prompt-optimizer/internal/service"
)

const (
	frontendName       = "http"
	categoryValidation = "validation"
)

type Handler struct {
	prompts  service.PromptService
	limiter  *ratelimit.Limiter
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	maxInput int
}

func NewHandler(deps Deps) *Handler {
	if deps.MaxInput <= 0 {
		deps.MaxInput = domain.DefaultMaxInputLength
	}
	return &Handler{
		prompts:  deps.Prompts,
		limiter:  deps.RateLimiter,
		metrics:  deps.Metrics,
		gatherer: deps.Gatherer,
		maxInput: deps.MaxInput,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/prompts", h.GeneratePrompt)
	api.GET("/modes", h.ListModes)

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(h.gatherer)))
}

type GenerateRequest struct {
	Mode  string `json:"mode"`
	Input string `json:"input"`
}

type GenerateResponse struct {
	ID         string `json:"id"`
	Mode       string `json:"mode"`
	Prompt     string `json:"prompt"`
	Characters int    `json:"characters"`
}

type ModeResponse struct {
	Mode        string `json:"mode"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ErrorBody struct {
	Category  string `json:"category"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// GeneratePrompt handles POST /api/v1/prompts.
func (h *Handler) GeneratePrompt(c echo.Context) error {
	start := time.Now()
	if h.metrics != nil {
		h.metrics.IncRequestsInFlight()
		defer h.metrics.DecRequestsInFlight()
	}

	status, err := h.generate(c)
	if h.metrics != nil {
		h.metrics.RecordRequest(frontendName, status, time.Since(start))
	}
	return err
}

func (h *Handler) generate(c echo.Context) (string, error) {
	if h.limiter != nil && !h.limiter.Allow("ip:"+c.RealIP()) {
		if h.metrics != nil {
			h.metrics.RecordRateLimitHit(frontendName)
		}
		return "rate_limited", c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: ErrorBody{
			Category:  string(llm.CategoryRateLimit),
			Message:   "Too many requests. Please wait a minute.",
			Retryable: true,
		}})
	}

	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return "invalid", c.JSON(http.StatusBadRequest, validationError("Request body must be JSON with mode and input."))
	}

	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		return "invalid", h.writeError(c, err)
	}

	res, err := h.prompts.Generate(c.Request().Context(), &domain.PromptRequest{
		ID:    c.Response().Header().Get(echo.HeaderXRequestID),
		Mode:  mode,
		Input: req.Input,
	})
	if err != nil {
		return "error", h.writeError(c, err)
	}

	return "ok", c.JSON(http.StatusOK, GenerateResponse{
		ID:         res.ID,
		Mode:       res.Mode.String(),
		Prompt:     res.Text,
		Characters: res.Characters,
	})
}

// ListModes handles GET /api/v1/modes.
func (h *Handler) ListModes(c echo.Context) error {
	modes := make([]ModeResponse, 0, len(domain.Modes()))
	for _, m := range domain.Modes() {
		modes = append(modes, ModeResponse{
			Mode:        m.String(),
			Title:       m.Title(),
			Description: m.Description(),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"modes": modes})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return c.JSON(http.StatusBadRequest, validationError("Please enter some text to generate a prompt."))
	case errors.Is(err, domain.ErrInputTooLong):
		return c.JSON(http.StatusBadRequest, validationError(fmt.Sprintf("Input is too long. Maximum %d characters.", h.maxInput)))
	case errors.Is(err, domain.ErrInvalidMode):
		return c.JSON(http.StatusBadRequest, validationError("Mode must be fast or advanced."))
	}

	llmErr := llm.AsError(err)
	return c.JSON(statusForCategory(llmErr.Category), ErrorResponse{Error: ErrorBody{
		Category:  llmErr.Category.String(),
		Message:   llmErr.Message,
		Retryable: llmErr.Category.Retryable(),
	}})
}

func statusForCategory(c llm.Category) int {
	switch c {
	case llm.CategoryConfiguration:
		return http.StatusServiceUnavailable
	case llm.CategoryRateLimit:
		return http.StatusTooManyRequests
	case llm.CategoryAuth, llm.CategoryUpstreamServer, llm.CategoryUpstreamClient, llm.CategoryResponseShape:
		return http.StatusBadGateway
	case llm.CategoryNetwork:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func validationError(msg string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Category: categoryValidation, Message: msg}}
}
