package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kitbuilder587/prompt-optimizer/internal/domain"
	"github.com/kitbuilder587/prompt-optimizer/internal/repository"
)

type UserService interface {
	GetOrCreate(ctx context.Context, telegramID int64, username string) (*domain.User, error)
	SetMode(ctx context.Context, telegramID int64, mode domain.Mode) error
}

type userService struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) UserService {
	return &userService{
		repo:   repo,
		logger: logger,
	}
}

func (s *userService) GetOrCreate(ctx context.Context, telegramID int64, username string) (*domain.User, error) {
	user, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err == nil {
		if user.Username != username {
			user.Username = username
			if updateErr := s.repo.Update(ctx, user); updateErr != nil {
				s.logger.Warn("failed to update username",
					zap.Error(updateErr),
					zap.Int64("telegram_id", telegramID),
				)
			}
		}
		return user, nil
	}

	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	newUser := &domain.User{
		TelegramID: telegramID,
		Username:   username,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		// lost a race with a concurrent message from the same user
		if errors.Is(err, domain.ErrUserExists) {
			return s.repo.GetByTelegramID(ctx, telegramID)
		}
		return nil, err
	}

	s.logger.Info("new user created",
		zap.Int64("telegram_id", telegramID),
		zap.String("username", username),
	)

	return newUser, nil
}

func (s *userService) SetMode(ctx context.Context, telegramID int64, mode domain.Mode) error {
	if !mode.IsValid() {
		return domain.ErrInvalidMode
	}
	if err := s.repo.SetPreferredMode(ctx, telegramID, mode); err != nil {
		return err
	}

	s.logger.Info("preferred mode changed",
		zap.Int64("telegram_id", telegramID),
		zap.String("mode", mode.String()),
	)
	return nil
}
