package model

import (
	"time"
)

type Folder struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`

	// Loaded separately, not a database column
	Files []*File `db:"-"`
}
