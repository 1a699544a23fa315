package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stashbin/stashbin/internal/model"
	"github.com/stashbin/stashbin/internal/repository"
	"github.com/stashbin/stashbin/internal/repository/testutil"
	"github.com/stretchr/testify/require"
)

func TestFileRepository_CreateAndByIDForUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFileRepository(db)
	user := testutil.SeedUser(t, db, "a@x.com")

	file := &model.File{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		Filename:    "report.pdf",
		MimeType:    "application/pdf",
		Size:        2048,
		StoragePath: "123-report.pdf",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, repo.Create(file))

	got, err := repo.ByIDForUser(file.ID, user.ID)
	require.NoError(t, err)
	require.Equal(t, "report.pdf", got.Filename)
	require.Nil(t, got.FolderID)
	require.EqualValues(t, 2048, got.Size)
}

func TestFileRepository_ByIDForUser_OtherUserIsNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFileRepository(db)
	owner := testutil.SeedUser(t, db, "a@x.com")
	other := testutil.SeedUser(t, db, "b@x.com")
	file := testutil.SeedFile(t, db, owner.ID, nil, "secret.txt")

	_, err := repo.ByIDForUser(file.ID, other.ID)
	require.ErrorIs(t, err, repository.ErrFileNotFound)
}

func TestFileRepository_UnorganizedByUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFileRepository(db)
	user := testutil.SeedUser(t, db, "a@x.com")
	folder := testutil.SeedFolder(t, db, user.ID, "Docs")

	testutil.SeedFile(t, db, user.ID, nil, "loose.txt")
	testutil.SeedFile(t, db, user.ID, &folder.ID, "filed.txt")

	files, err := repo.UnorganizedByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "loose.txt", files[0].Filename)
}

func TestFileRepository_ByFolder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFileRepository(db)
	user := testutil.SeedUser(t, db, "a@x.com")
	folder := testutil.SeedFolder(t, db, user.ID, "Docs")

	testutil.SeedFile(t, db, user.ID, &folder.ID, "one.txt")
	testutil.SeedFile(t, db, user.ID, &folder.ID, "two.txt")
	testutil.SeedFile(t, db, user.ID, nil, "loose.txt")

	files, err := repo.ByFolder(folder.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)
}

func TestFileRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFileRepository(db)
	user := testutil.SeedUser(t, db, "a@x.com")
	file := testutil.SeedFile(t, db, user.ID, nil, "gone.txt")

	require.NoError(t, repo.Delete(file.ID))

	_, err := repo.ByIDForUser(file.ID, user.ID)
	require.ErrorIs(t, err, repository.ErrFileNotFound)
}

func TestFileRepository_DeleteByFolder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFileRepository(db)
	user := testutil.SeedUser(t, db, "a@x.com")
	folder := testutil.SeedFolder(t, db, user.ID, "Docs")

	testutil.SeedFile(t, db, user.ID, &folder.ID, "one.txt")
	testutil.SeedFile(t, db, user.ID, &folder.ID, "two.txt")
	loose := testutil.SeedFile(t, db, user.ID, nil, "loose.txt")

	require.NoError(t, repo.DeleteByFolder(folder.ID))

	files, err := repo.ByFolder(folder.ID)
	require.NoError(t, err)
	require.Empty(t, files)

	// Unorganized files are untouched
	_, err = repo.ByIDForUser(loose.ID, user.ID)
	require.NoError(t, err)
}
