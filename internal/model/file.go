package model

import (
	"fmt"
	"time"
)

type File struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	FolderID    *string   `db:"folder_id"` // nil = unorganized
	Filename    string    `db:"filename"`  // original name as uploaded
	MimeType    string    `db:"mime_type"`
	Size        int64     `db:"size"`
	StoragePath string    `db:"storage_path"`
	CreatedAt   time.Time `db:"created_at"`
}

// HumanSize formats the byte size the way the details endpoint reports it.
func (f *File) HumanSize() string {
	return fmt.Sprintf("%.2f KB", float64(f.Size)/1024)
}
