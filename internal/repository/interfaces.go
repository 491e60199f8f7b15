package repository

import (
	"context"

	"github.com/kitbuilder587/prompt-optimizer/internal/domain"
)

// UserRepository stores chat users and their preferred generation mode.
type UserRepository interface {
	GetOrCreate(ctx context.Context, telegramID int64, username string) (*domain.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	SetPreferredMode(ctx context.Context, telegramID int64, mode domain.Mode) error
}
