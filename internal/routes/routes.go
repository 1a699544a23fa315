package routes

import (
	"net/http"

	"github.com/stashbin/stashbin/internal/app"
	"github.com/stashbin/stashbin/internal/handler"
	"github.com/stashbin/stashbin/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	auth := handler.NewAuthHandler(app.AuthService)
	files := handler.NewFileHandler(app.FileService)
	share := handler.NewShareHandler(app.ShareService)

	mux := http.NewServeMux()

	// Auth (rate limited on the credential mutations)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("GET /auth/register", middleware.RequireGuest(auth.RegisterPage))
	mux.HandleFunc("POST /auth/register", rateLimiter(middleware.RequireGuest(auth.Register)))
	mux.HandleFunc("GET /auth/login", middleware.RequireGuest(auth.LoginPage))
	mux.HandleFunc("POST /auth/login", rateLimiter(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("GET /auth/logout", middleware.RequireAuth(auth.Logout))

	// Files and folders (all owner-scoped)
	mux.HandleFunc("GET /files", middleware.RequireAuth(files.List))
	mux.HandleFunc("POST /files/upload", middleware.RequireAuth(files.Upload))
	mux.HandleFunc("POST /files/folders", middleware.RequireAuth(files.CreateFolder))
	mux.HandleFunc("PUT /files/folders/{id}", middleware.RequireAuth(files.RenameFolder))
	mux.HandleFunc("GET /files/folders/{id}", middleware.RequireAuth(files.ViewFolder))
	mux.HandleFunc("DELETE /files/folders/{id}", middleware.RequireAuth(files.DeleteFolder))
	mux.HandleFunc("DELETE /files/files/{id}", middleware.RequireAuth(files.DeleteFile))
	mux.HandleFunc("GET /files/files/{id}/details", middleware.RequireAuth(files.Details))
	mux.HandleFunc("GET /files/download/{id}", middleware.RequireAuth(files.Download))

	// Shares: creating one requires owning the folder, resolving is public
	mux.HandleFunc("POST /share/folder/{folderId}/share", middleware.RequireAuth(share.Create))
	mux.HandleFunc("GET /share/{accessToken}", share.Resolve)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.Auth(app.AuthService),
	)

	return handler
}
