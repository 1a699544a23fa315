package model

import (
	"time"
)

// Session is the server-side record behind an auth cookie. The cookie itself
// is a signed JWT carrying the session id; deleting the row revokes the
// session immediately regardless of the token's own expiry.
type Session struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
