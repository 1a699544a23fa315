package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stashbin/stashbin/internal/model"
)

var ErrShareNotFound = errors.New("share not found")

type SharedFolderRepository interface {
	Create(share *model.SharedFolder) error
	ByToken(token string) (*model.SharedFolder, error)
}

type sharedFolderRepository struct {
	db *sqlx.DB
}

func NewSharedFolderRepository(db *sqlx.DB) SharedFolderRepository {
	return &sharedFolderRepository{db: db}
}

func (r *sharedFolderRepository) Create(share *model.SharedFolder) error {
	if share.ID == "" {
		share.ID = uuid.New().String()
	}
	if share.CreatedAt.IsZero() {
		share.CreatedAt = time.Now()
	}

	query := `INSERT INTO shared_folders (id, folder_id, access_token, expires_at, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		share.ID,
		share.FolderID,
		share.AccessToken,
		share.ExpiresAt,
		share.CreatedAt,
	)

	return err
}

func (r *sharedFolderRepository) ByToken(token string) (*model.SharedFolder, error) {
	share := &model.SharedFolder{}
	query := `SELECT * FROM shared_folders WHERE access_token = $1`

	err := r.db.Get(share, query, token)
	if err == sql.ErrNoRows {
		return nil, ErrShareNotFound
	}

	return share, err
}
