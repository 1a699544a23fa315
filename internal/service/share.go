package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stashbin/stashbin/internal/model"
	"github.com/stashbin/stashbin/internal/repository"
	"github.com/stashbin/stashbin/internal/validation"
)

// ErrShareExpired marks a grant whose expiry has passed. It is distinct
// from repository.ErrShareNotFound so the handler can answer 410 instead of
// 404, though both render the same copy.
var ErrShareExpired = errors.New("share has expired")

type ShareService struct {
	shareRepo  repository.SharedFolderRepository
	folderRepo repository.FolderRepository
	fileRepo   repository.FileRepository
	appURL     string

	now func() time.Time
}

func NewShareService(
	shareRepo repository.SharedFolderRepository,
	folderRepo repository.FolderRepository,
	fileRepo repository.FileRepository,
	appURL string,
) *ShareService {
	return &ShareService{
		shareRepo:  shareRepo,
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		appURL:     strings.TrimSuffix(appURL, "/"),
		now:        time.Now,
	}
}

// SharedView is what a share link resolves to: the folder's current file
// listing and when the grant runs out.
type SharedView struct {
	Folder    *model.Folder
	Files     []*model.File
	ExpiresAt time.Time
}

// Create issues a new grant for one of the user's folders. Only the folder
// owner may share it; a foreign folder id reads as not found.
func (s *ShareService) Create(userID, folderID, duration string) (string, *model.SharedFolder, error) {
	days, err := validation.ParseShareDuration(duration)
	if err != nil {
		return "", nil, err
	}

	folder, err := s.folderRepo.ByIDForUser(folderID, userID)
	if err != nil {
		return "", nil, err
	}

	token, err := generateAccessToken()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	share := &model.SharedFolder{
		FolderID:    folder.ID,
		AccessToken: token,
		ExpiresAt:   s.now().Add(time.Duration(days) * 24 * time.Hour),
	}

	err = s.shareRepo.Create(share)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create share: %w", err)
	}

	return s.appURL + "/share/" + share.AccessToken, share, nil
}

// Resolve looks a token up and checks expiry lazily. Expired grants stay in
// the database; there is no background sweep.
func (s *ShareService) Resolve(token string) (*SharedView, error) {
	share, err := s.shareRepo.ByToken(token)
	if err != nil {
		return nil, err
	}

	if share.IsExpired(s.now()) {
		return nil, ErrShareExpired
	}

	folder, err := s.folderRepo.ByID(share.FolderID)
	if err != nil {
		return nil, err
	}

	files, err := s.fileRepo.ByFolder(folder.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder files: %w", err)
	}

	return &SharedView{
		Folder:    folder,
		Files:     files,
		ExpiresAt: share.ExpiresAt,
	}, nil
}

func generateAccessToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
