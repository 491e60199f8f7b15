package mock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitbuilder587/prompt-optimizer/internal/llm"
)

func TestClient_Complete(t *testing.T) {
	c := New().WithResponse("  optimized  ")

	got, err := c.Complete(context.Background(), "sys", "idea")
	require.NoError(t, err)
	assert.Equal(t, "optimized", got)
	assert.Equal(t, 1, c.Calls())
	assert.Equal(t, "sys", c.LastSystem)
	assert.Equal(t, "idea", c.LastUser)
}

func TestClient_Complete_Echo(t *testing.T) {
	got, err := New().Complete(context.Background(), "sys", " write a poem ")
	require.NoError(t, err)
	assert.Equal(t, "You are a seasoned expert. write a poem", got)
}

func TestClient_Complete_ErrorIsTyped(t *testing.T) {
	c := New().WithError(errors.New("boom"))

	_, err := c.Complete(context.Background(), "s", "u")
	assert.Equal(t, llm.CategoryUnknown, llm.CategoryOf(err))

	c.WithError(llm.FromStatus(429, ""))
	_, err = c.Complete(context.Background(), "s", "u")
	assert.ErrorIs(t, err, llm.ErrRateLimit)
}

func TestClient_Complete_DelayRespectsContext(t *testing.T) {
	c := New().WithDelay(time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Complete(ctx, "s", "u")
	assert.ErrorIs(t, err, llm.ErrNetwork)
}

func TestClient_Reset(t *testing.T) {
	c := New()
	c.Complete(context.Background(), "s", "u")
	c.Reset()

	assert.Equal(t, 0, c.Calls())
	assert.Empty(t, c.AllCalls)
}
