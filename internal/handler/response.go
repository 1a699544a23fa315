package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/stashbin/stashbin/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

type fileResponse struct {
	ID         string  `json:"id"`
	Filename   string  `json:"filename"`
	MimeType   string  `json:"mimetype"`
	Size       int64   `json:"size"`
	FolderID   *string `json:"folderId,omitempty"`
	UploadedAt string  `json:"uploadedAt"`
}

type folderResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	CreatedAt string         `json:"createdAt"`
	Files     []fileResponse `json:"files"`
}

func toFileResponse(file *model.File) fileResponse {
	return fileResponse{
		ID:         file.ID,
		Filename:   file.Filename,
		MimeType:   file.MimeType,
		Size:       file.Size,
		FolderID:   file.FolderID,
		UploadedAt: file.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toFolderResponse(folder *model.Folder) folderResponse {
	files := make([]fileResponse, 0, len(folder.Files))
	for _, file := range folder.Files {
		files = append(files, toFileResponse(file))
	}
	return folderResponse{
		ID:        folder.ID,
		Name:      folder.Name,
		CreatedAt: folder.CreatedAt.UTC().Format(time.RFC3339),
		Files:     files,
	}
}
