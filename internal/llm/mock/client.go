package mock

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kitbuilder587/prompt-optimizer/internal/llm"
)

// Client is an in-process llm.Client. With no Response set it echoes the
// user text back behind a short persona line, which is enough for local runs.
type Client struct {
	mu sync.Mutex

	Response string
	Error    error
	Delay    time.Duration

	CallCount  int
	LastSystem string
	LastUser   string
	AllCalls   []Call
}

type Call struct {
	System string
	User   string
}

func New() *Client {
	return &Client{}
}

func (c *Client) WithResponse(response string) *Client {
	c.Response = response
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) WithDelay(delay time.Duration) *Client {
	c.Delay = delay
	return c
}

func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastSystem = system
	c.LastUser = user
	c.AllCalls = append(c.AllCalls, Call{System: system, User: user})
	resp, respErr, delay := c.Response, c.Error, c.Delay
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return "", llm.Network(ctx.Err())
		case <-time.After(delay):
		}
	}

	if respErr != nil {
		return "", llm.AsError(respErr)
	}

	if resp == "" {
		return "You are a seasoned expert. " + strings.TrimSpace(user), nil
	}
	return strings.TrimSpace(resp), nil
}

func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CallCount
}

func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CallCount = 0
	c.LastSystem = ""
	c.LastUser = ""
	c.AllCalls = nil
}

var _ llm.Client = (*Client)(nil)
