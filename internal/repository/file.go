package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/stashbin/stashbin/internal/model"
)

var ErrFileNotFound = errors.New("file not found")

type FileRepository interface {
	Create(file *model.File) error
	ByIDForUser(id, userID string) (*model.File, error)
	UnorganizedByUser(userID string) ([]*model.File, error)
	ByFolder(folderID string) ([]*model.File, error)
	Delete(id string) error
	DeleteByFolder(folderID string) error
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(file *model.File) error {
	query := `INSERT INTO files (id, user_id, folder_id, filename, mime_type, size, storage_path, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		file.ID,
		file.UserID,
		file.FolderID,
		file.Filename,
		file.MimeType,
		file.Size,
		file.StoragePath,
		file.CreatedAt,
	)

	return err
}

func (r *fileRepository) ByIDForUser(id, userID string) (*model.File, error) {
	file := &model.File{}
	query := `SELECT * FROM files WHERE id = $1 AND user_id = $2`

	err := r.db.Get(file, query, id, userID)
	if err == sql.ErrNoRows {
		return nil, ErrFileNotFound
	}

	return file, err
}

func (r *fileRepository) UnorganizedByUser(userID string) ([]*model.File, error) {
	var files []*model.File
	query := `SELECT * FROM files WHERE user_id = $1 AND folder_id IS NULL ORDER BY created_at`

	err := r.db.Select(&files, query, userID)
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (r *fileRepository) ByFolder(folderID string) ([]*model.File, error) {
	var files []*model.File
	query := `SELECT * FROM files WHERE folder_id = $1 ORDER BY created_at`

	err := r.db.Select(&files, query, folderID)
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (r *fileRepository) Delete(id string) error {
	query := `DELETE FROM files WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}

func (r *fileRepository) DeleteByFolder(folderID string) error {
	query := `DELETE FROM files WHERE folder_id = $1`
	_, err := r.db.Exec(query, folderID)
	return err
}
