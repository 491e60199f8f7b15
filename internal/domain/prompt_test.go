package domain

import (
	"strings"
	"testing"
)

func TestPromptRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     PromptRequest
		maxLen  int
		wantErr error
	}{
		{
			name:    "valid fast request",
			req:     PromptRequest{Mode: ModeFast, Input: "write a marketing email"},
			wantErr: nil,
		},
		{
			name:    "whitespace only input",
			req:     PromptRequest{Mode: ModeFast, Input: "   \n\t"},
			wantErr: ErrEmptyInput,
		},
		{
			name:    "invalid mode",
			req:     PromptRequest{Mode: "turbo", Input: "hello"},
			wantErr: ErrInvalidMode,
		},
		{
			name:    "too long for custom limit",
			req:     PromptRequest{Mode: ModeAdvanced, Input: strings.Repeat("a", 11)},
			maxLen:  10,
			wantErr: ErrInputTooLong,
		},
		{
			name:    "multibyte input counted in characters",
			req:     PromptRequest{Mode: ModeAdvanced, Input: strings.Repeat("я", 10)},
			maxLen:  10,
			wantErr: nil,
		},
		{
			name:    "default limit",
			req:     PromptRequest{Mode: ModeFast, Input: strings.Repeat("a", DefaultMaxInputLength+1)},
			wantErr: ErrInputTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(tt.maxLen); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewPromptResult(t *testing.T) {
	res := NewPromptResult("id-1", ModeFast, "Привет")
	if res.Characters != 6 {
		t.Errorf("Characters = %d, want 6", res.Characters)
	}
	if res.Mode != ModeFast || res.ID != "id-1" {
		t.Errorf("unexpected result %+v", res)
	}
}
