package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/stashbin/stashbin/internal/ctxkeys"
	"github.com/stashbin/stashbin/internal/repository"
	"github.com/stashbin/stashbin/internal/service"
	"github.com/stashbin/stashbin/internal/validation"
)

// multipart form overhead allowed on top of the blob itself
const uploadBodyLimit = validation.MaxUploadBytes + 1<<20

type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

type listResponse struct {
	Folders          []folderResponse `json:"folders"`
	UnorganizedFiles []fileResponse   `json:"unorganizedFiles"`
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	listing, err := h.fileService.List(user.ID)
	if err != nil {
		slog.Error("failed to list files", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Error fetching files")
		return
	}

	folders := make([]folderResponse, 0, len(listing.Folders))
	for _, folder := range listing.Folders {
		folders = append(folders, toFolderResponse(folder))
	}
	unorganized := make([]fileResponse, 0, len(listing.Unorganized))
	for _, file := range listing.Unorganized {
		unorganized = append(unorganized, toFileResponse(file))
	}

	writeJSON(w, http.StatusOK, listResponse{
		Folders:          folders,
		UnorganizedFiles: unorganized,
	})
}

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, uploadBodyLimit)

	err := r.ParseMultipartForm(32 << 20)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large: maximum size is 10 MB")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	blob, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer blob.Close()

	err = validation.ValidateUpload(header)
	if err != nil {
		status := http.StatusBadRequest
		if header.Size > validation.MaxUploadBytes {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, err.Error())
		return
	}

	var folderID *string
	if v := r.FormValue("folderId"); v != "" {
		folderID = &v
	}

	file, err := h.fileService.Upload(user.ID, folderID, service.Upload{
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Content:  blob,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "file too large: maximum size is 10 MB")
		case errors.Is(err, repository.ErrFolderNotFound):
			writeError(w, http.StatusNotFound, "Folder not found")
		default:
			slog.Error("file upload failed", "error", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "Error uploading file")
		}
		return
	}

	slog.Info("file uploaded", "user_id", user.ID, "file_id", file.ID, "size", file.Size)
	http.Redirect(w, r, "/files", http.StatusSeeOther)
}

func (h *FileHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	_, err := h.fileService.CreateFolder(user.ID, r.FormValue("name"))
	if err != nil {
		if errors.Is(err, service.ErrFolderNameRequired) {
			writeError(w, http.StatusBadRequest, "folder name is required")
			return
		}
		slog.Error("failed to create folder", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Error creating folder")
		return
	}

	http.Redirect(w, r, "/files", http.StatusSeeOther)
}

func (h *FileHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	folderID := r.PathValue("id")

	err := h.fileService.RenameFolder(user.ID, folderID, r.FormValue("name"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFolderNameRequired):
			writeError(w, http.StatusBadRequest, "folder name is required")
		case errors.Is(err, repository.ErrFolderNotFound):
			writeError(w, http.StatusNotFound, "Folder not found")
		default:
			slog.Error("failed to rename folder", "error", err, "user_id", user.ID, "folder_id", folderID)
			writeError(w, http.StatusInternalServerError, "Error updating folder")
		}
		return
	}

	http.Redirect(w, r, "/files", http.StatusSeeOther)
}

func (h *FileHandler) ViewFolder(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	folderID := r.PathValue("id")

	folder, err := h.fileService.FolderByID(user.ID, folderID)
	if err != nil {
		if errors.Is(err, repository.ErrFolderNotFound) {
			writeError(w, http.StatusNotFound, "Folder not found")
			return
		}
		slog.Error("failed to get folder", "error", err, "user_id", user.ID, "folder_id", folderID)
		writeError(w, http.StatusInternalServerError, "Error retrieving folder")
		return
	}

	writeJSON(w, http.StatusOK, toFolderResponse(folder))
}

func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	fileID := r.PathValue("id")

	file, err := h.fileService.DeleteFile(user.ID, fileID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			writeError(w, http.StatusNotFound, "File not found")
			return
		}
		slog.Error("failed to delete file", "error", err, "user_id", user.ID, "file_id", fileID)
		writeError(w, http.StatusInternalServerError, "Error deleting file")
		return
	}

	// Back to the folder the file lived in, if any
	if file.FolderID != nil {
		http.Redirect(w, r, "/files/folders/"+*file.FolderID, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/files", http.StatusSeeOther)
}

func (h *FileHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	folderID := r.PathValue("id")

	err := h.fileService.DeleteFolder(user.ID, folderID)
	if err != nil {
		if errors.Is(err, repository.ErrFolderNotFound) {
			writeError(w, http.StatusNotFound, "Folder not found")
			return
		}
		slog.Error("failed to delete folder", "error", err, "user_id", user.ID, "folder_id", folderID)
		writeError(w, http.StatusInternalServerError, "Error deleting folder")
		return
	}

	http.Redirect(w, r, "/files", http.StatusSeeOther)
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	fileID := r.PathValue("id")

	reader, file, err := h.fileService.Download(user.ID, fileID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			writeError(w, http.StatusNotFound, "File not found")
			return
		}
		slog.Error("download failed", "error", err, "user_id", user.ID, "file_id", fileID)
		writeError(w, http.StatusInternalServerError, "Error downloading file")
		return
	}
	defer reader.Close()

	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": file.Filename,
	}))

	_, err = io.Copy(w, reader)
	if err != nil {
		slog.Error("failed to stream file", "error", err, "file_id", file.ID)
	}
}

type detailsResponse struct {
	Filename   string `json:"filename"`
	Size       string `json:"size"`
	MimeType   string `json:"mimetype"`
	UploadedAt string `json:"uploadedAt"`
	Folder     string `json:"folder"`
}

func (h *FileHandler) Details(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	fileID := r.PathValue("id")

	details, err := h.fileService.Details(user.ID, fileID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			writeError(w, http.StatusNotFound, "File not found")
			return
		}
		slog.Error("failed to get file details", "error", err, "user_id", user.ID, "file_id", fileID)
		writeError(w, http.StatusInternalServerError, "Error fetching file details")
		return
	}

	writeJSON(w, http.StatusOK, detailsResponse{
		Filename:   details.Filename,
		Size:       details.Size,
		MimeType:   details.MimeType,
		UploadedAt: details.UploadedAt.UTC().Format(time.RFC3339),
		Folder:     details.Folder,
	})
}
