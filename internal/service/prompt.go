package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kitbuilder587/prompt-optimizer/internal/domain"
	"github.com/kitbuilder587/prompt-optimizer/internal/llm"
	"github.com/kitbuilder587/prompt-optimizer/internal/metrics"
	"github.com/kitbuilder587/prompt-optimizer/internal/prompt"
)

// PromptService turns raw user ideas into optimized prompts.
//
// Validation failures are domain errors. Completion failures wrap both
// domain.ErrGenerationFailed and the client's *llm.Error, so callers can use
// llm.AsError(err).Message as the text to show.
type PromptService interface {
	Generate(ctx context.Context, req *domain.PromptRequest) (*domain.PromptResult, error)
	GenerateFast(ctx context.Context, input string) (string, error)
	GenerateAdvanced(ctx context.Context, input string) (string, error)
}

type PromptServiceDeps struct {
	LLM       llm.Client
	Templates prompt.Templates
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	// Provider labels LLM metrics.
	Provider       string
	MaxInputLength int
	// NewID generates request ids; defaults to uuid.NewString.
	NewID func() string
}

type promptService struct {
	llm       llm.Client
	templates prompt.Templates
	logger    *zap.Logger
	metrics   *metrics.Metrics
	provider  string
	maxInput  int
	newID     func() string
}

func NewPromptService(deps PromptServiceDeps) PromptService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Provider == "" {
		deps.Provider = "openrouter"
	}
	if deps.MaxInputLength <= 0 {
		deps.MaxInputLength = domain.DefaultMaxInputLength
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}

	return &promptService{
		llm:       deps.LLM,
		templates: deps.Templates,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		provider:  deps.Provider,
		maxInput:  deps.MaxInputLength,
		newID:     deps.NewID,
	}
}

func (s *promptService) GenerateFast(ctx context.Context, input string) (string, error) {
	return s.generateText(ctx, domain.ModeFast, input)
}

func (s *promptService) GenerateAdvanced(ctx context.Context, input string) (string, error) {
	return s.generateText(ctx, domain.ModeAdvanced, input)
}

func (s *promptService) generateText(ctx context.Context, mode domain.Mode, input string) (string, error) {
	res, err := s.Generate(ctx, &domain.PromptRequest{Mode: mode, Input: input})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (s *promptService) Generate(ctx context.Context, req *domain.PromptRequest) (*domain.PromptResult, error) {
	if err := req.Validate(s.maxInput); err != nil {
		s.recordGeneration(req.Mode, "invalid", 0)
		return nil, err
	}

	if req.ID == "" {
		req.ID = s.newID()
	}

	log := s.logger.With(
		zap.String("request_id", req.ID),
		zap.String("mode", req.Mode.String()),
		zap.Int64("user_id", req.UserID),
	)

	instruction := s.templates.InstructionFor(req.Mode)

	start := time.Now()
	text, err := s.llm.Complete(ctx, instruction, req.Input)
	duration := time.Since(start)

	if err != nil {
		llmErr := llm.AsError(err)
		s.recordLLM(llmErr.Category.String(), duration)
		s.recordGeneration(req.Mode, "error", 0)

		log.Error("prompt generation failed",
			zap.String("category", llmErr.Category.String()),
			zap.Bool("retryable", llmErr.Category.Retryable()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, llmErr)
	}

	result := domain.NewPromptResult(req.ID, req.Mode, text)
	s.recordLLM("ok", duration)
	s.recordGeneration(req.Mode, "ok", result.Characters)

	log.Info("prompt generated",
		zap.Int("input_chars", len([]rune(req.Input))),
		zap.Int("output_chars", result.Characters),
		zap.Duration("duration", duration),
	)

	return result, nil
}

func (s *promptService) recordLLM(category string, duration time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordLLMRequest(s.provider, category, duration)
	}
}

func (s *promptService) recordGeneration(mode domain.Mode, status string, chars int) {
	if s.metrics == nil {
		return
	}
	label := mode.String()
	if !mode.IsValid() {
		label = "invalid"
	}
	s.metrics.RecordGeneration(label, status, chars)
}
