package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stashbin/stashbin/internal/ctxkeys"
	"github.com/stashbin/stashbin/internal/handler"
	"github.com/stashbin/stashbin/internal/model"
	"github.com/stashbin/stashbin/internal/repository"
	"github.com/stashbin/stashbin/internal/repository/testutil"
	"github.com/stashbin/stashbin/internal/service"
	"github.com/stretchr/testify/require"
)

// failingShareRepo makes the share insert fail like a database outage.
type failingShareRepo struct {
	repository.SharedFolderRepository
}

func (r *failingShareRepo) Create(share *model.SharedFolder) error {
	return errors.New("driver: bad connection")
}

func newShareCreateRequest(user *model.User, folderID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/share/folder/"+folderID+"/share", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("folderId", folderID)
	return req.WithContext(ctxkeys.WithUser(req.Context(), user))
}

func TestShareHandler_Create_RepositoryFailureIsInternal(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.SeedUser(t, db, "owner@x.com")
	folder := testutil.SeedFolder(t, db, owner.ID, "Taxes")

	svc := service.NewShareService(
		&failingShareRepo{SharedFolderRepository: repository.NewSharedFolderRepository(db)},
		repository.NewFolderRepository(db),
		repository.NewFileRepository(db),
		"http://localhost:8090",
	)
	h := handler.NewShareHandler(svc)

	rec := httptest.NewRecorder()
	h.Create(rec, newShareCreateRequest(owner, folder.ID, `{"duration":"7d"}`))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Error creating share link")
	// Internal error detail never reaches the client
	require.NotContains(t, rec.Body.String(), "bad connection")
}

func TestShareHandler_Create_BadDurationIsBadRequest(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.SeedUser(t, db, "owner@x.com")
	folder := testutil.SeedFolder(t, db, owner.ID, "Taxes")

	svc := service.NewShareService(
		repository.NewSharedFolderRepository(db),
		repository.NewFolderRepository(db),
		repository.NewFileRepository(db),
		"http://localhost:8090",
	)
	h := handler.NewShareHandler(svc)

	rec := httptest.NewRecorder()
	h.Create(rec, newShareCreateRequest(owner, folder.ID, `{"duration":"soon"}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "duration")
}
