package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-blog-api/internal/config"
	"go-blog-api/internal/handler"
	"go-blog-api/internal/middleware"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Post    *handler.PostHandler
	Comment *handler.CommentHandler
	Image   *handler.ImageHandler
}

// New wires the route table. Paths are flat, without a version prefix, to
// stay compatible with the existing web client.
func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Auth
	r.Post("/signup", h.Auth.Signup)
	r.Post("/login", h.Auth.Login)
	r.Post("/token", h.Auth.Token)
	r.Post("/logout", h.Auth.Logout)

	// Posts
	r.With(authMiddleware.RequireAuth).Post("/create", h.Post.Create)
	r.With(authMiddleware.RequireAuth).Put("/update/{id}", h.Post.Update)
	r.With(authMiddleware.RequireAuth).Delete("/delete/{id}", h.Post.Delete)
	r.With(authMiddleware.RequireAuth).Get("/post/{id}", h.Post.Get)
	r.With(authMiddleware.RequireAuth).Get("/posts", h.Post.List)

	// Comments
	r.With(authMiddleware.RequireAuth).Post("/comment/new", h.Comment.Create)
	r.With(authMiddleware.RequireAuth).Get("/comments/{id}", h.Comment.ListByPost)
	r.With(authMiddleware.RequireAuth).Delete("/comment/delete/{id}", h.Comment.Delete)

	// Images
	r.Post("/file/upload", h.Image.Upload)
	r.Get("/file/{filename}", h.Image.Get)

	return r
}
