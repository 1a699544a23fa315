package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stashbin/stashbin/internal/model"
	"github.com/stashbin/stashbin/internal/repository"
	"github.com/stashbin/stashbin/internal/storage"
	"github.com/stashbin/stashbin/internal/validation"
)

var (
	ErrUploadTooLarge     = errors.New("file exceeds the maximum upload size")
	ErrFolderNameRequired = errors.New("folder name is required")
)

type FileService struct {
	fileRepo   repository.FileRepository
	folderRepo repository.FolderRepository
	storage    storage.Storage
}

func NewFileService(fileRepo repository.FileRepository, folderRepo repository.FolderRepository, storage storage.Storage) *FileService {
	return &FileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		storage:    storage,
	}
}

// UserFiles is everything a user sees on their file listing: their folders
// with contents, plus files that live in no folder.
type UserFiles struct {
	Folders     []*model.Folder
	Unorganized []*model.File
}

// Upload carries an incoming blob and its client-supplied metadata.
type Upload struct {
	Filename string
	MimeType string
	Size     int64
	Content  io.Reader
}

// FileDetails is the read-only projection served by the details endpoint.
type FileDetails struct {
	Filename   string
	Size       string
	MimeType   string
	UploadedAt time.Time
	Folder     string
}

func (s *FileService) List(userID string) (*UserFiles, error) {
	folders, err := s.folderRepo.ByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	for _, folder := range folders {
		files, err := s.fileRepo.ByFolder(folder.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list folder files: %w", err)
		}
		folder.Files = files
	}

	unorganized, err := s.fileRepo.UnorganizedByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unorganized files: %w", err)
	}

	return &UserFiles{Folders: folders, Unorganized: unorganized}, nil
}

// Upload writes the blob first and commits metadata second. If the metadata
// commit fails the blob is deleted again, so storage never holds a blob no
// record points at.
func (s *FileService) Upload(userID string, folderID *string, upload Upload) (*model.File, error) {
	if upload.Size > validation.MaxUploadBytes {
		return nil, ErrUploadTooLarge
	}

	// The target folder must belong to the uploader. A foreign folder id is
	// reported exactly like a nonexistent one.
	if folderID != nil {
		_, err := s.folderRepo.ByIDForUser(*folderID, userID)
		if err != nil {
			return nil, err
		}
	}

	storagePath := blobKey(upload.Filename)

	err := s.storage.Save(storagePath, upload.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to save blob: %w", err)
	}

	file := &model.File{
		ID:          uuid.New().String(),
		UserID:      userID,
		FolderID:    folderID,
		Filename:    upload.Filename,
		MimeType:    upload.MimeType,
		Size:        upload.Size,
		StoragePath: storagePath,
		CreatedAt:   time.Now(),
	}

	err = s.fileRepo.Create(file)
	if err != nil {
		delErr := s.storage.Delete(storagePath)
		if delErr != nil {
			slog.Error("failed to delete blob during upload cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return file, nil
}

func (s *FileService) CreateFolder(userID, name string) (*model.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrFolderNameRequired
	}

	folder := &model.Folder{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}

	err := s.folderRepo.Create(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	return folder, nil
}

func (s *FileService) RenameFolder(userID, folderID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrFolderNameRequired
	}

	return s.folderRepo.Rename(folderID, userID, name)
}

func (s *FileService) FolderByID(userID, folderID string) (*model.Folder, error) {
	folder, err := s.folderRepo.ByIDForUser(folderID, userID)
	if err != nil {
		return nil, err
	}

	files, err := s.fileRepo.ByFolder(folder.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder files: %w", err)
	}
	folder.Files = files

	return folder, nil
}

// DeleteFile removes blob and metadata. The blob delete is best-effort: a
// blob that is already gone must not block removal of its record. The
// deleted file is returned so the caller knows which folder it came from.
func (s *FileService) DeleteFile(userID, fileID string) (*model.File, error) {
	file, err := s.fileRepo.ByIDForUser(fileID, userID)
	if err != nil {
		return nil, err
	}

	delErr := s.storage.Delete(file.StoragePath)
	if delErr != nil && !errors.Is(delErr, storage.ErrBlobNotFound) {
		slog.Error("failed to delete blob", "error", delErr, "path", file.StoragePath)
	}

	err = s.fileRepo.Delete(file.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete file record: %w", err)
	}

	return file, nil
}

// DeleteFolder deletes children first, then the folder row, so no file
// record can outlive its folder. Individual blob failures are logged and
// skipped.
func (s *FileService) DeleteFolder(userID, folderID string) error {
	folder, err := s.folderRepo.ByIDForUser(folderID, userID)
	if err != nil {
		return err
	}

	files, err := s.fileRepo.ByFolder(folder.ID)
	if err != nil {
		return fmt.Errorf("failed to list folder files: %w", err)
	}

	for _, file := range files {
		delErr := s.storage.Delete(file.StoragePath)
		if delErr != nil && !errors.Is(delErr, storage.ErrBlobNotFound) {
			slog.Error("failed to delete blob", "error", delErr, "path", file.StoragePath)
		}
	}

	err = s.fileRepo.DeleteByFolder(folder.ID)
	if err != nil {
		return fmt.Errorf("failed to delete folder files: %w", err)
	}

	return s.folderRepo.Delete(folder.ID, userID)
}

// Download opens the blob for streaming. A record whose blob has gone
// missing is stale: the record is deleted and the file reported not found.
func (s *FileService) Download(userID, fileID string) (io.ReadCloser, *model.File, error) {
	file, err := s.fileRepo.ByIDForUser(fileID, userID)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.storage.Open(file.StoragePath)
	if errors.Is(err, storage.ErrBlobNotFound) {
		delErr := s.fileRepo.Delete(file.ID)
		if delErr != nil {
			slog.Error("failed to delete stale file record", "error", delErr, "file_id", file.ID)
		}
		return nil, nil, repository.ErrFileNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open blob: %w", err)
	}

	return reader, file, nil
}

func (s *FileService) Details(userID, fileID string) (*FileDetails, error) {
	file, err := s.fileRepo.ByIDForUser(fileID, userID)
	if err != nil {
		return nil, err
	}

	folderName := "Unorganized"
	if file.FolderID != nil {
		folder, err := s.folderRepo.ByID(*file.FolderID)
		if err != nil {
			return nil, fmt.Errorf("failed to get folder: %w", err)
		}
		folderName = folder.Name
	}

	return &FileDetails{
		Filename:   file.Filename,
		Size:       file.HumanSize(),
		MimeType:   file.MimeType,
		UploadedAt: file.CreatedAt,
		Folder:     folderName,
	}, nil
}

// blobKey derives a collision-resistant storage name: millisecond timestamp
// plus the sanitized original name.
func blobKey(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.ReplaceAll(base, "..", "")
	if base == "" || base == "." || base == "/" {
		base = "file"
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)
}
