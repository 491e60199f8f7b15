package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kitbuilder587/prompt-optimizer/internal/domain"
	"github.com/kitbuilder587/prompt-optimizer/internal/llm"
	"github.com/kitbuilder587/prompt-optimizer/internal/llm/mock"
	"github.com/kitbuilder587/prompt-optimizer/internal/metrics"
	"github.com/kitbuilder587/prompt-optimizer/internal/prompt"
)

func newTestPromptService(client llm.Client, m *metrics.Metrics) PromptService {
	return NewPromptService(PromptServiceDeps{
		LLM:       client,
		Templates: prompt.DefaultTemplates(),
		Logger:    zap.NewNop(),
		Metrics:   m,
		Provider:  "mock",
		NewID:     func() string { return "req-1" },
	})
}

func TestPromptService_GenerateFast(t *testing.T) {
	client := mock.New().WithResponse("You are a senior copywriter...")
	svc := newTestPromptService(client, nil)

	got, err := svc.GenerateFast(context.Background(), "marketing email for a launch")
	require.NoError(t, err)
	assert.Equal(t, "You are a senior copywriter...", got)

	assert.Equal(t, prompt.FastInstruction, client.LastSystem)
	assert.Equal(t, "marketing email for a launch", client.LastUser)
}

func TestPromptService_GenerateAdvanced(t *testing.T) {
	client := mock.New().WithResponse("structured prompt")
	svc := newTestPromptService(client, nil)

	_, err := svc.GenerateAdvanced(context.Background(), "idea")
	require.NoError(t, err)
	assert.Equal(t, prompt.AdvancedInstruction, client.LastSystem)
}

func TestPromptService_Generate(t *testing.T) {
	client := mock.New().WithResponse("Привет, эксперт")
	svc := newTestPromptService(client, nil)

	req := &domain.PromptRequest{UserID: 42, Mode: domain.ModeAdvanced, Input: "  keep my spaces  "}
	res, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "req-1", res.ID)
	assert.Equal(t, domain.ModeAdvanced, res.Mode)
	assert.Equal(t, 15, res.Characters)
	assert.Equal(t, "  keep my spaces  ", client.LastUser, "raw input is sent upstream")
}

func TestPromptService_Generate_KeepsRequestID(t *testing.T) {
	svc := newTestPromptService(mock.New(), nil)

	res, err := svc.Generate(context.Background(), &domain.PromptRequest{ID: "given", Mode: domain.ModeFast, Input: "x"})
	require.NoError(t, err)
	assert.Equal(t, "given", res.ID)
}

func TestPromptService_Generate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *domain.PromptRequest
		wantErr error
	}{
		{"empty input", &domain.PromptRequest{Mode: domain.ModeFast, Input: ""}, domain.ErrEmptyInput},
		{"blank input", &domain.PromptRequest{Mode: domain.ModeFast, Input: " \n "}, domain.ErrEmptyInput},
		{"invalid mode", &domain.PromptRequest{Mode: "turbo", Input: "idea"}, domain.ErrInvalidMode},
		{"too long", &domain.PromptRequest{Mode: domain.ModeFast, Input: strings.Repeat("a", domain.DefaultMaxInputLength+1)}, domain.ErrInputTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mock.New()
			svc := newTestPromptService(client, nil)

			_, err := svc.Generate(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, client.Calls(), "client must not be called for invalid input")
		})
	}
}

func TestPromptService_Generate_ClientError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantCat llm.Category
	}{
		{"not configured", llm.NotConfigured(), llm.CategoryConfiguration},
		{"auth", llm.FromStatus(401, ""), llm.CategoryAuth},
		{"rate limit", llm.FromStatus(429, ""), llm.CategoryRateLimit},
		{"network", llm.Network(errors.New("dial tcp")), llm.CategoryNetwork},
		{"shape", llm.InvalidReply(nil), llm.CategoryResponseShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestPromptService(mock.New().WithError(tt.err), nil)

			got, err := svc.GenerateFast(context.Background(), "idea")
			require.Error(t, err)
			assert.Empty(t, got)
			assert.ErrorIs(t, err, domain.ErrGenerationFailed)

			llmErr := llm.AsError(err)
			assert.Equal(t, tt.wantCat, llmErr.Category)
			assert.NotEmpty(t, llmErr.Message)
		})
	}
}

func TestPromptService_Metrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	client := mock.New().WithResponse("done")
	svc := newTestPromptService(client, m)

	_, err := svc.GenerateFast(context.Background(), "idea")
	require.NoError(t, err)

	client.WithError(llm.FromStatus(429, ""))
	_, err = svc.GenerateAdvanced(context.Background(), "idea")
	require.Error(t, err)

	_, err = svc.GenerateFast(context.Background(), "")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationsTotal.WithLabelValues("fast", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationsTotal.WithLabelValues("advanced", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationsTotal.WithLabelValues("fast", "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LLMRequestsTotal.WithLabelValues("mock", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LLMRequestsTotal.WithLabelValues("mock", "rate_limit")))
}

func TestPromptService_CustomTemplates(t *testing.T) {
	client := mock.New()
	svc := NewPromptService(PromptServiceDeps{
		LLM:       client,
		Templates: prompt.Templates{Advanced: "custom advanced"},
	})

	_, err := svc.GenerateAdvanced(context.Background(), "idea")
	require.NoError(t, err)
	assert.Equal(t, "custom advanced", client.LastSystem)
}
