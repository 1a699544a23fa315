package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/stashbin/stashbin/internal/ctxkeys"
	"github.com/stashbin/stashbin/internal/repository"
	"github.com/stashbin/stashbin/internal/service"
	"github.com/stashbin/stashbin/internal/validation"
)

type ShareHandler struct {
	shareService *service.ShareService
}

func NewShareHandler(shareService *service.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

type createShareRequest struct {
	Duration string `json:"duration"`
}

type createShareResponse struct {
	ShareURL string `json:"shareUrl"`
}

type sharedFolderResponse struct {
	Folder    folderResponse `json:"folder"`
	Files     []fileResponse `json:"files"`
	ExpiresAt string         `json:"expiresAt"`
}

func (h *ShareHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	folderID := r.PathValue("folderId")

	duration, ok := shareDuration(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	shareURL, share, err := h.shareService.Create(user.ID, folderID, duration)
	if err != nil {
		var vErr *validation.Error
		switch {
		case errors.Is(err, repository.ErrFolderNotFound):
			writeError(w, http.StatusNotFound, "Folder not found")
		case errors.As(err, &vErr):
			writeError(w, http.StatusBadRequest, vErr.Error())
		default:
			slog.Error("failed to create share", "error", err, "user_id", user.ID, "folder_id", folderID)
			writeError(w, http.StatusInternalServerError, "Error creating share link")
		}
		return
	}

	slog.Info("share created", "user_id", user.ID, "folder_id", folderID, "expires_at", share.ExpiresAt)
	writeJSON(w, http.StatusOK, createShareResponse{ShareURL: shareURL})
}

// shareDuration reads the duration from a JSON body or a form field,
// whichever the client sent.
func shareDuration(r *http.Request) (string, bool) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req createShareRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			return "", false
		}
		return req.Duration, true
	}
	return r.FormValue("duration"), true
}

func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("accessToken")

	view, err := h.shareService.Resolve(token)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrShareNotFound):
			writeError(w, http.StatusNotFound, "Share link not found or has expired")
		case errors.Is(err, service.ErrShareExpired):
			writeError(w, http.StatusGone, "This share link has expired")
		default:
			slog.Error("failed to resolve share", "error", err)
			writeError(w, http.StatusInternalServerError, "Error accessing shared folder")
		}
		return
	}

	view.Folder.Files = view.Files
	folder := toFolderResponse(view.Folder)
	writeJSON(w, http.StatusOK, sharedFolderResponse{
		Folder:    folder,
		Files:     folder.Files,
		ExpiresAt: view.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
