package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stashbin/stashbin/internal/db"
	"github.com/stashbin/stashbin/internal/model"
	_ "modernc.org/sqlite"
)

// NewTestDB opens an in-memory SQLite database and applies all migrations.
// Shared-cache mode keeps the database alive across pooled connections;
// the per-test name keeps each test's database separate. Tests using this
// stay sequential: goose holds global dialect and filesystem state.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name(), time.Now().UnixNano())
	database, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		database.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}

func SeedUser(t *testing.T, database *sqlx.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: "$2a$10$seedseedseedseedseedseedseedseedseedseedseedseedseed",
		CreatedAt:    time.Now(),
	}

	_, err := database.Exec(
		`INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	return user
}

func SeedFolder(t *testing.T, database *sqlx.DB, userID, name string) *model.Folder {
	t.Helper()

	folder := &model.Folder{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}

	_, err := database.Exec(
		`INSERT INTO folders (id, user_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		folder.ID, folder.UserID, folder.Name, folder.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to seed folder: %v", err)
	}

	return folder
}

func SeedFile(t *testing.T, database *sqlx.DB, userID string, folderID *string, filename string) *model.File {
	t.Helper()

	file := &model.File{
		ID:          uuid.New().String(),
		UserID:      userID,
		FolderID:    folderID,
		Filename:    filename,
		MimeType:    "application/octet-stream",
		Size:        42,
		StoragePath: fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filename),
		CreatedAt:   time.Now(),
	}

	_, err := database.Exec(
		`INSERT INTO files (id, user_id, folder_id, filename, mime_type, size, storage_path, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		file.ID, file.UserID, file.FolderID, file.Filename, file.MimeType, file.Size, file.StoragePath, file.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	return file
}
