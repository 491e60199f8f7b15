package domain

import (
	"strings"
	"unicode/utf8"
)

const DefaultMaxInputLength = 4000

type PromptRequest struct {
	ID     string
	UserID int64
	Mode   Mode
	Input  string
}

// Validate checks the request against maxLen characters; maxLen <= 0 uses
// DefaultMaxInputLength.
func (r *PromptRequest) Validate(maxLen int) error {
	if maxLen <= 0 {
		maxLen = DefaultMaxInputLength
	}
	if !r.Mode.IsValid() {
		return ErrInvalidMode
	}
	if strings.TrimSpace(r.Input) == "" {
		return ErrEmptyInput
	}
	if utf8.RuneCountInString(r.Input) > maxLen {
		return ErrInputTooLong
	}
	return nil
}

type PromptResult struct {
	ID         string
	Mode       Mode
	Text       string
	Characters int
}

func NewPromptResult(id string, mode Mode, text string) *PromptResult {
	return &PromptResult{
		ID:         id,
		Mode:       mode,
		Text:       text,
		Characters: utf8.RuneCountInString(text),
	}
}
