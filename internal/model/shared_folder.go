package model

import (
	"time"
)

// SharedFolder is a time-bounded grant to view a folder's contents. Anyone
// holding the access token can list the folder until expires_at passes.
// Several concurrent grants may exist for the same folder.
type SharedFolder struct {
	ID          string    `db:"id"`
	FolderID    string    `db:"folder_id"`
	AccessToken string    `db:"access_token"`
	ExpiresAt   time.Time `db:"expires_at"`
	CreatedAt   time.Time `db:"created_at"`
}

func (s *SharedFolder) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
