package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/stashbin/stashbin/internal/model"
)

var ErrFolderNotFound = errors.New("folder not found")

// FolderRepository is owner-scoped wherever a user acts on a folder: the
// query filters by owner, so a folder belonging to someone else is
// indistinguishable from one that does not exist. ByID is the only
// unscoped read and exists for share-link resolution.
type FolderRepository interface {
	Create(folder *model.Folder) error
	ByID(id string) (*model.Folder, error)
	ByIDForUser(id, userID string) (*model.Folder, error)
	ByUser(userID string) ([]*model.Folder, error)
	Rename(id, userID, name string) error
	Delete(id, userID string) error
}

type folderRepository struct {
	db *sqlx.DB
}

func NewFolderRepository(db *sqlx.DB) FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Create(folder *model.Folder) error {
	query := `INSERT INTO folders (id, user_id, name, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, folder.ID, folder.UserID, folder.Name, folder.CreatedAt)
	return err
}

func (r *folderRepository) ByID(id string) (*model.Folder, error) {
	folder := &model.Folder{}
	query := `SELECT * FROM folders WHERE id = $1`

	err := r.db.Get(folder, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrFolderNotFound
	}

	return folder, err
}

func (r *folderRepository) ByIDForUser(id, userID string) (*model.Folder, error) {
	folder := &model.Folder{}
	query := `SELECT * FROM folders WHERE id = $1 AND user_id = $2`

	err := r.db.Get(folder, query, id, userID)
	if err == sql.ErrNoRows {
		return nil, ErrFolderNotFound
	}

	return folder, err
}

func (r *folderRepository) ByUser(userID string) ([]*model.Folder, error) {
	var folders []*model.Folder
	query := `SELECT * FROM folders WHERE user_id = $1 ORDER BY created_at`

	err := r.db.Select(&folders, query, userID)
	if err != nil {
		return nil, err
	}

	return folders, nil
}

func (r *folderRepository) Rename(id, userID, name string) error {
	query := `UPDATE folders SET name = $1 WHERE id = $2 AND user_id = $3`

	result, err := r.db.Exec(query, name, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFolderNotFound
	}

	return nil
}

func (r *folderRepository) Delete(id, userID string) error {
	query := `DELETE FROM folders WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFolderNotFound
	}

	return nil
}
