package repository

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/prompt-optimizer/internal/domain"
)

// MemoryUserRepository keeps users in process memory. It backs the bot when
// no DATABASE_URL is configured and doubles as the test fake.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[int64]domain.User // key: TelegramID
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]domain.User),
	}
}

func (m *MemoryUserRepository) GetOrCreate(ctx context.Context, telegramID int64, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.users[telegramID]
	if !exists {
		user = domain.User{
			ID:         telegramID,
			TelegramID: telegramID,
			CreatedAt:  time.Now(),
		}
	}
	user.Username = username
	m.users[telegramID] = user
	return &user, nil
}

func (m *MemoryUserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[telegramID]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (m *MemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.TelegramID]; exists {
		return domain.ErrUserExists
	}

	user.ID = user.TelegramID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.TelegramID] = *user
	return nil
}

func (m *MemoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.TelegramID]; !exists {
		return domain.ErrUserNotFound
	}
	m.users[user.TelegramID] = *user
	return nil
}

func (m *MemoryUserRepository) SetPreferredMode(ctx context.Context, telegramID int64, mode domain.Mode) error {
	if !mode.IsValid() {
		return domain.ErrInvalidMode
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.users[telegramID]
	if !exists {
		return domain.ErrUserNotFound
	}
	user.PreferredMode = mode
	m.users[telegramID] = user
	return nil
}

var _ UserRepository = (*MemoryUserRepository)(nil)
