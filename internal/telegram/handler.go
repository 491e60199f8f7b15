package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kitbuilder587/prompt-optimizer/internal/domain"
	"github.com/kitbuilder587/prompt-optimizer/internal/llm"
)

const (
	msgGenericError = "Something went wrong. Please try again later."
	msgRateLimited  = "Too many requests. Please wait a minute."
)

type Handler struct {
	bot *Bot
}

func NewHandler(bot *Bot) *Handler {
	return &Handler{bot: bot}
}

func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return
	}

	h.bot.logger.Info("received message",
		zap.Int64("user_id", msg.From.ID),
		zap.String("username", msg.From.UserName),
		zap.Bool("is_command", msg.IsCommand()),
	)

	if !msg.IsCommand() {
		h.handlePrompt(ctx, msg, false)
		return
	}

	switch msg.Command() {
	case "fast", "advanced":
		h.handlePrompt(ctx, msg, true)
	case "start":
		h.handleStart(ctx, msg)
	case "help":
		h.handleHelp(ctx, msg)
	case "mode":
		h.handleMode(ctx, msg)
	default:
		h.bot.Send(msg.Chat.ID, "Unknown command. Use /help to see what I can do.")
	}
}

func (h *Handler) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	user, err := h.bot.userService.GetOrCreate(ctx, msg.From.ID, msg.From.UserName)
	if err != nil {
		h.bot.logger.Error("failed to create user", zap.Error(err))
		h.bot.Send(msg.Chat.ID, msgGenericError)
		return
	}

	response := "<b>Welcome to the Prompt Generator!</b>\n\n" +
		"Send me a rough idea and I will turn it into an optimized prompt for an AI model.\n\n" +
		FormatModeList(user.Mode(h.bot.defaultMode)) +
		"\nUse /help to see all commands."

	h.bot.Send(msg.Chat.ID, response)
}

func (h *Handler) handleHelp(ctx context.Context, msg *tgbotapi.Message) {
	helpText := `<b>Commands:</b>

/fast idea - Concise single-paragraph prompt
/advanced idea - Structured prompt with introduction, bullet points and conclusion
/mode - Show your current mode
/mode fast|advanced - Change the mode used for plain messages
/help - Show this help

<b>How to use:</b>
Just send your idea as a message and I will generate a prompt in your current mode.

<b>Examples:</b>
• /fast write a cover letter for a junior data analyst
• /advanced plan a three day trip to Lisbon`

	h.bot.Send(msg.Chat.ID, helpText+fmt.Sprintf("\n\nMessages are limited to %d characters.", h.bot.maxInput))
}

func (h *Handler) handleMode(ctx context.Context, msg *tgbotapi.Message) {
	user, err := h.bot.userService.GetOrCreate(ctx, msg.From.ID, msg.From.UserName)
	if err != nil {
		h.bot.logger.Error("failed to load user", zap.Error(err))
		h.bot.Send(msg.Chat.ID, msgGenericError)
		return
	}

	arg := strings.TrimSpace(msg.CommandArguments())
	if arg == "" {
		current := user.Mode(h.bot.defaultMode)
		h.bot.Send(msg.Chat.ID, fmt.Sprintf("Current mode: <b>%s</b>\n\n%s\nChange it with /mode fast or /mode advanced.",
			current.Title(), FormatModeList(current)))
		return
	}

	mode, err := domain.ParseMode(arg)
	if err != nil {
		h.bot.Send(msg.Chat.ID, mapErrorToMessage(err, h.bot.maxInput))
		return
	}

	if err := h.bot.userService.SetMode(ctx, user.TelegramID, mode); err != nil {
		h.bot.logger.Error("failed to set mode",
			zap.Error(err),
			zap.Int64("user_id", user.TelegramID),
		)
		h.bot.Send(msg.Chat.ID, mapErrorToMessage(err, h.bot.maxInput))
		return
	}

	h.bot.Send(msg.Chat.ID, fmt.Sprintf("Mode set to <b>%s</b>. Plain messages will now use it.", mode.Title()))
}

// handlePrompt generates a prompt for /fast, /advanced or a plain message.
// Plain messages use the user's preferred mode.
func (h *Handler) handlePrompt(ctx context.Context, msg *tgbotapi.Message, explicit bool) {
	key := "tg:" + strconv.FormatInt(msg.From.ID, 10)
	if !h.bot.rateLimiter.Allow(key) {
		h.bot.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", msg.From.ID),
			zap.Time("reset_at", h.bot.rateLimiter.ResetTime(key)),
		)
		h.bot.RecordRateLimitHit()
		h.bot.Send(msg.Chat.ID, msgRateLimited)
		return
	}

	user, err := h.bot.userService.GetOrCreate(ctx, msg.From.ID, msg.From.UserName)
	if err != nil {
		h.bot.logger.Error("failed to load user", zap.Error(err))
		h.bot.Send(msg.Chat.ID, msgGenericError)
		return
	}

	input, mode := ParsePromptCommand(msg.Text, user.Mode(h.bot.defaultMode))
	if explicit && input == "" {
		h.bot.Send(msg.Chat.ID, fmt.Sprintf("Add your idea after the command, for example: /%s write a product description", mode))
		return
	}

	h.bot.SendTyping(msg.Chat.ID)

	res, err := h.bot.promptService.Generate(ctx, &domain.PromptRequest{
		UserID: user.TelegramID,
		Mode:   mode,
		Input:  input,
	})
	if err != nil {
		h.bot.logger.Warn("prompt generation failed",
			zap.Error(err),
			zap.Int64("user_id", user.TelegramID),
			zap.String("mode", mode.String()),
		)
		h.bot.Send(msg.Chat.ID, mapErrorToMessage(err, h.bot.maxInput))
		return
	}

	for _, m := range SplitMessage(FormatPromptResponse(res), MessageLimit) {
		if err := h.bot.Send(msg.Chat.ID, m); err != nil {
			h.bot.logger.Error("failed to send message", zap.Error(err))
		}
	}
}

// mapErrorToMessage turns service errors into chat text. Client errors carry
// their own user-facing message.
func mapErrorToMessage(err error, maxInput int) string {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return "Please enter some text to generate a prompt."
	case errors.Is(err, domain.ErrInputTooLong):
		return fmt.Sprintf("Input is too long. Maximum %d characters.", maxInput)
	case errors.Is(err, domain.ErrInvalidMode):
		return "Unknown mode. Use fast or advanced."
	}

	var llmErr *llm.Error
	if errors.As(err, &llmErr) {
		return "⚠️ " + llmErr.Message
	}
	return msgGenericError
}
