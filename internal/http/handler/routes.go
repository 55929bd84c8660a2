package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/config"
	"docvault/internal/http/middleware"
	"docvault/internal/service"
	"docvault/internal/session"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic: they resolve the session, call a
// service, and translate typed outcomes into responses.
func RegisterRoutes(app *fiber.App, db *sql.DB, authSvc service.AuthService, docSvc service.DocumentService, sessions *session.Registry, httpCfg config.HTTPConfig) {
	// Health endpoints
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.json", OpenAPIDocument())
	app.Get("/docs", DocsPage())

	api := app.Group("/api")

	// Auth endpoints; signup and login start a session themselves.
	api.Post("/signup", Signup(authSvc, sessions, httpCfg.CookieSecure))
	api.Post("/login", Login(authSvc, sessions, httpCfg.CookieSecure))
	api.Post("/logout", Logout(sessions, httpCfg.CookieSecure))

	// Everything below requires a resolvable session.
	authed := api.Use(middleware.RequireSession(sessions))

	authed.Get("/session", Whoami(authSvc))

	authed.Get("/documents", ListDocuments(docSvc))
	authed.Post("/documents", UploadDocument(docSvc))
	authed.Get("/documents/:id", GetDocument(docSvc))
	authed.Get("/documents/:id/download", DownloadDocument(docSvc))
	authed.Patch("/documents/:id", UpdateDocument(docSvc))
	authed.Delete("/documents/:id", DeleteDocument(docSvc))
	authed.Post("/documents/:id/shares", ShareDocument(docSvc))
	authed.Delete("/documents/:id/shares/:accountId", RevokeShare(docSvc))
	authed.Get("/documents/:id/url", ShareLink(docSvc))
}
