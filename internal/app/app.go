package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/stashbin/stashbin/internal/config"
	"github.com/stashbin/stashbin/internal/db"
	"github.com/stashbin/stashbin/internal/repository"
	"github.com/stashbin/stashbin/internal/service"
	"github.com/stashbin/stashbin/internal/storage"
)

type App struct {
	Cfg          *config.Config
	DB           *sqlx.DB
	AuthService  *service.AuthService
	FileService  *service.FileService
	ShareService *service.ShareService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	sessionRepository := repository.NewSessionRepository(database)
	folderRepository := repository.NewFolderRepository(database)
	fileRepository := repository.NewFileRepository(database)
	sharedFolderRepository := repository.NewSharedFolderRepository(database)

	// Blob storage
	blobStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	authService := service.NewAuthService(
		userRepository,
		sessionRepository,
		cfg.SessionSecret,
		cfg.IsProduction(),
		cfg.SessionExpiry,
	)
	fileService := service.NewFileService(fileRepository, folderRepository, blobStorage)
	shareService := service.NewShareService(sharedFolderRepository, folderRepository, fileRepository, cfg.AppURL)

	return &App{
		Cfg:          cfg,
		DB:           database,
		AuthService:  authService,
		FileService:  fileService,
		ShareService: shareService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
