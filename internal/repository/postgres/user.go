package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kitbuilder587/prompt-optimizer/internal/domain"
	"github.com/kitbuilder587/prompt-optimizer/internal/repository"
)

type UserRepo struct {
	db *DB
}

func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetOrCreate(ctx context.Context, telegramID int64, username string) (*domain.User, error) {
	query := `
        INSERT INTO users (id, username)
        VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username
        RETURNING id, username, preferred_mode, created_at
    `

	user, err := scanUser(r.db.Pool.QueryRow(ctx, query, telegramID, username))
	if err != nil {
		return nil, fmt.Errorf("get or create user: %w", err)
	}
	return user, nil
}

func (r *UserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	query := `SELECT id, username, preferred_mode, created_at FROM users WHERE id = $1`

	user, err := scanUser(r.db.Pool.QueryRow(ctx, query, telegramID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}
	return user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, username, preferred_mode) VALUES ($1, $2, $3) RETURNING created_at`

	err := r.db.Pool.QueryRow(ctx, query, user.TelegramID, user.Username, string(user.PreferredMode)).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	user.ID = user.TelegramID
	return nil
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET username = $2, preferred_mode = $3 WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, user.TelegramID, user.Username, string(user.PreferredMode))
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *UserRepo) SetPreferredMode(ctx context.Context, telegramID int64, mode domain.Mode) error {
	if !mode.IsValid() {
		return domain.ErrInvalidMode
	}

	result, err := r.db.Pool.Exec(ctx, `UPDATE users SET preferred_mode = $2 WHERE id = $1`, telegramID, string(mode))
	if err != nil {
		return fmt.Errorf("set preferred mode: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user domain.User
		mode string
	)
	if err := row.Scan(&user.ID, &user.Username, &mode, &user.CreatedAt); err != nil {
		return nil, err
	}
	user.TelegramID = user.ID
	user.PreferredMode = domain.Mode(mode)
	return &user, nil
}

var _ repository.UserRepository = (*UserRepo)(nil)
