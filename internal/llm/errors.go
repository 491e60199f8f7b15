package llm

import (
	"errors"
	"fmt"
)

// Category is the closed set of failures a Client reports.
type Category string

const (
	CategoryConfiguration  Category = "configuration"
	CategoryAuth           Category = "auth"
	CategoryRateLimit      Category = "rate_limit"
	CategoryUpstreamServer Category = "upstream_server"
	CategoryUpstreamClient Category = "upstream_client"
	CategoryResponseShape  Category = "response_shape"
	CategoryNetwork        Category = "network"
	CategoryUnknown        Category = "unknown"
)

const (
	MsgNotConfigured  = "API key not configured. Please set OPENROUTER_API_KEY."
	MsgInvalidAPIKey  = "Invalid API key. Please check your configuration."
	MsgRateLimited    = "Rate limit exceeded. Please try again later."
	MsgServerError    = "API server error. Please try again."
	MsgInvalidReply   = "Invalid response from API"
	MsgNetworkError   = "Network error. Please check your internet connection."
	MsgUnexpected     = "An unexpected error occurred"
	msgRequestFailed  = "API request failed"
	upstreamMsgPrefix = "API Error: "
)

func Categories() []Category {
	return []Category{
		CategoryConfiguration,
		CategoryAuth,
		CategoryRateLimit,
		CategoryUpstreamServer,
		CategoryUpstreamClient,
		CategoryResponseShape,
		CategoryNetwork,
		CategoryUnknown,
	}
}

func (c Category) String() string { return string(c) }

// Retryable reports whether trying the same call later may succeed.
func (c Category) Retryable() bool {
	switch c {
	case CategoryRateLimit, CategoryUpstreamServer, CategoryNetwork:
		return true
	default:
		return false
	}
}

// Error is the only error type a Client returns. Message is safe to show to
// an end user; Err keeps the underlying cause for logs.
type Error struct {
	Category   Category
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by category, so errors.Is(err, ErrRateLimit) works
// regardless of message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Category == e.Category && t.Message == "" && t.StatusCode == 0 && t.Err == nil
}

// Sentinels for errors.Is checks.
var (
	ErrNotConfigured = &Error{Category: CategoryConfiguration}
	ErrAuthFailed    = &Error{Category: CategoryAuth}
	ErrRateLimit     = &Error{Category: CategoryRateLimit}
	ErrServer        = &Error{Category: CategoryUpstreamServer}
	ErrRequestFailed = &Error{Category: CategoryUpstreamClient}
	ErrInvalidReply  = &Error{Category: CategoryResponseShape}
	ErrNetwork       = &Error{Category: CategoryNetwork}
	ErrUnknown       = &Error{Category: CategoryUnknown}
)

var errNotClassified = errors.New("unclassified error")

func NotConfigured() *Error {
	return &Error{Category: CategoryConfiguration, Message: MsgNotConfigured}
}

func InvalidReply(cause error) *Error {
	return &Error{Category: CategoryResponseShape, Message: MsgInvalidReply, Err: cause}
}

func Network(cause error) *Error {
	return &Error{Category: CategoryNetwork, Message: MsgNetworkError, Err: cause}
}

// Unknown wraps an unexpected fault, keeping its message for the user.
func Unknown(cause error) *Error {
	if cause == nil {
		cause = errNotClassified
	}
	msg := cause.Error()
	if msg == "" {
		msg = MsgUnexpected
	}
	return &Error{Category: CategoryUnknown, Message: msg, Err: cause}
}

// FromStatus classifies a non-2xx response. upstreamMsg is the provider's own
// error message, used only for statuses without a fixed message.
func FromStatus(status int, upstreamMsg string) *Error {
	e := &Error{StatusCode: status}
	switch status {
	case 401:
		e.Category, e.Message = CategoryAuth, MsgInvalidAPIKey
	case 429:
		e.Category, e.Message = CategoryRateLimit, MsgRateLimited
	case 500:
		e.Category, e.Message = CategoryUpstreamServer, MsgServerError
	default:
		if upstreamMsg == "" {
			upstreamMsg = msgRequestFailed
		}
		e.Category, e.Message = CategoryUpstreamClient, upstreamMsgPrefix+upstreamMsg
	}
	return e
}

// AsError converts any error into an *Error; unclassified errors become
// CategoryUnknown.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Unknown(err)
}

// CategoryOf returns the category of err, or "" for nil.
func CategoryOf(err error) Category {
	if err == nil {
		return ""
	}
	return AsError(err).Category
}
