package telegram

import (
	"strings"
	"unicode"

	"github.com/kitbuilder587/prompt-optimizer/internal/domain"
)

// ParsePromptCommand splits a message into the idea and the mode to use.
// /fast and /advanced pick the mode explicitly; anything else is treated as
// a plain idea in defaultMode. Line breaks inside the idea are kept.
func ParsePromptCommand(text string, defaultMode domain.Mode) (input string, mode domain.Mode) {
	text = strings.TrimSpace(text)

	if text == "" {
		return "", defaultMode
	}

	if !strings.HasPrefix(text, "/") {
		return text, defaultMode
	}

	command, rest := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i > 0 {
		command, rest = text[:i], strings.TrimSpace(text[i:])
	}

	switch commandName(command) {
	case "fast":
		return rest, domain.ModeFast
	case "advanced":
		return rest, domain.ModeAdvanced
	default:
		return text, defaultMode
	}
}

// commandName lowercases "/Fast@SomeBot" to "fast".
func commandName(command string) string {
	command = strings.TrimPrefix(strings.ToLower(command), "/")
	if at := strings.IndexByte(command, '@'); at >= 0 {
		command = command[:at]
	}
	return command
}
