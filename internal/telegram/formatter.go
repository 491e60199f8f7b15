package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/kitbuilder587/prompt-optimizer/internal/domain"
)

// MessageLimit is the Bot API limit for a single text message.
const MessageLimit = 4096

func FormatPromptResponse(res *domain.PromptResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>%s</b> · %d characters\n\n", res.Mode.Title(), res.Characters))
	sb.WriteString(html.EscapeString(res.Text))
	return sb.String()
}

// FormatModeList renders both modes and marks the current one.
func FormatModeList(current domain.Mode) string {
	var sb strings.Builder
	sb.WriteString("<b>Modes:</b>\n")

	for _, m := range domain.Modes() {
		marker := "○"
		if m == current {
			marker = "●"
		}
		sb.WriteString(fmt.Sprintf("%s <b>%s</b> (/%s) - %s\n",
			marker,
			m.Title(),
			m.String(),
			html.EscapeString(m.Description()),
		))
	}

	return sb.String()
}

func SplitMessage(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var messages []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			messages = append(messages, text)
			break
		}

		splitPoint := findSafeSplitPoint(text, maxLen)
		if splitPoint <= 0 || splitPoint > len(text) {
			splitPoint = maxLen
		}

		messages = append(messages, text[:splitPoint])
		text = text[splitPoint:]
	}

	return messages
}

func findSafeSplitPoint(text string, maxLen int) int {
	// prefer whitespace in the second half, outside of tags
	for i := maxLen - 1; i > maxLen/2; i-- {
		if i >= len(text) {
			continue
		}
		if isInsideHTMLTag(text, i) {
			continue
		}

		if text[i] == '\n' || text[i] == ' ' {
			return i + 1
		}
	}

	if maxLen < len(text) && isInsideHTMLTag(text, maxLen) {
		for i := maxLen; i < len(text); i++ {
			if text[i] == '>' {
				for j := i + 1; j < len(text) && j < i+50; j++ {
					if text[j] == '\n' || text[j] == ' ' {
						return j + 1
					}
				}
				return i + 1
			}
		}
	}

	for i := maxLen - 1; i > 0; i-- {
		if text[i] == ' ' || text[i] == '\n' {
			return i + 1
		}
	}

	return runeBoundary(text, maxLen)
}

// runeBoundary moves a byte offset back so a UTF-8 sequence is not cut.
func runeBoundary(text string, pos int) int {
	for pos > 0 && pos < len(text) && !isRuneStart(text[pos]) {
		pos--
	}
	return pos
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func isInsideHTMLTag(text string, pos int) bool {
	if pos >= len(text) || pos < 0 {
		return false
	}
	for i := pos; i >= 0; i-- {
		if text[i] == '>' {
			return false
		}
		if text[i] == '<' {
			return true
		}
	}
	return false
}
