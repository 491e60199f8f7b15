// Package prompt holds the system instructions sent with every completion.
package prompt

import (
	"fmt"

	"github.com/kitbuilder587/prompt-optimizer/internal/domain"
)

// FastInstruction asks for a single persona-led paragraph under 500 characters.
const FastInstruction = `As an expert in prompt engineering, craft a concise, professional prompt that instructs an AI model to act as a seasoned expert and transform the given input into a clear, single-paragraph, straightforward and highly accurate prompt. Keep it under 500 characters, write in a direct professional tone, and return only the prompt with no explanations or conversation.`

// AdvancedInstruction asks for an intro, bulleted requirements and a conclusion
// in 500-1000 characters.
const AdvancedInstruction = `You are an AI language model tasked with transforming input text into a professional prompt aimed at obtaining the most accurate and high-quality results from AI models. Address a seasoned expert in the relevant domain with a professional and detailed tone. Structure the output in plain English text using a bullet-point format, including: - A prompt introduction addressing the expert professionally. - A prompt body containing all key details in structured bullet points. - A prompt conclusion emphasizing the expert's role and how their experience should be applied. Ensure the final output is between 500 and 1000 characters, contains no bold formatting, and provides only the professional prompt without any additional responses or conversations.`

// Templates maps each mode to its system instruction. Empty fields fall back
// to the defaults.
type Templates struct {
	Fast     string
	Advanced string
}

func DefaultTemplates() Templates {
	return Templates{
		Fast:     FastInstruction,
		Advanced: AdvancedInstruction,
	}
}

// InstructionFor returns the instruction for mode. It panics on a Mode that
// did not come from domain.ParseMode or the declared constants.
func (t Templates) InstructionFor(mode domain.Mode) string {
	switch mode {
	case domain.ModeFast:
		if t.Fast != "" {
			return t.Fast
		}
		return FastInstruction
	case domain.ModeAdvanced:
		if t.Advanced != "" {
			return t.Advanced
		}
		return AdvancedInstruction
	default:
		panic(fmt.Sprintf("prompt: unknown mode %q", string(mode)))
	}
}

func InstructionFor(mode domain.Mode) string {
	return DefaultTemplates().InstructionFor(mode)
}
