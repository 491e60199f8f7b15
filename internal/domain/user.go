package domain

import "time"

type User struct {
	ID            int64
	TelegramID    int64
	Username      string
	PreferredMode Mode
	CreatedAt     time.Time
}

// Mode returns the user's preferred mode, falling back when none is stored.
func (u *User) Mode(fallback Mode) Mode {
	if u == nil || !u.PreferredMode.IsValid() {
		return fallback
	}
	return u.PreferredMode
}
