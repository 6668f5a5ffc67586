// Package app wires the stores, services and handlers into the HTTP API.
package app

import (
	"context"
	"net/http"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/comment"
	"bookshelf/internal/config"
	"bookshelf/internal/httpx"
	"bookshelf/internal/identity"
)

const readyTimeout = 500 * time.Millisecond

// NewRouter registers every route and wraps the mux in the shared middleware
// chain.
func NewRouter(cfg config.Config, repos *Repositories, verifier identity.Verifier) http.Handler {
	bookHandler := book.NewHTTPHandler(book.NewService(repos.Books, cfg.EnforceOwnership))
	commentHandler := comment.NewHTTPHandler(comment.NewService(repos.Comments))
	protected := httpx.AuthMiddleware(verifier)

	router := http.NewServeMux()

	router.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		httpx.Text(w, http.StatusOK, "server is running")
	})
	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.Text(w, http.StatusOK, "ok")
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := repos.Ping(ctx); err != nil {
			httpx.Text(w, http.StatusServiceUnavailable, "store not ready")
			return
		}
		httpx.Text(w, http.StatusOK, "ready")
	})

	router.HandleFunc("GET /books", bookHandler.List)
	router.HandleFunc("GET /books/{id}", bookHandler.Get)
	router.HandleFunc("GET /books/sort/{order}", bookHandler.SortByRating)
	router.HandleFunc("GET /latest-books", bookHandler.Latest)
	router.Handle("POST /books", protected(http.HandlerFunc(bookHandler.Create)))
	router.Handle("GET /my-books", protected(http.HandlerFunc(bookHandler.ListMine)))
	router.Handle("PUT /books/{id}", protected(http.HandlerFunc(bookHandler.Update)))
	router.Handle("DELETE /books/{id}", protected(http.HandlerFunc(bookHandler.Delete)))

	router.HandleFunc("POST /comments", commentHandler.Create)
	router.HandleFunc("GET /comments/{bookId}", commentHandler.ListByBook)

	var handler http.Handler = router
	handler = httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes)(handler)
	handler = httpx.SecurityHeadersMiddleware(cfg.EnableHSTS)(handler)
	handler = httpx.CORSMiddleware(cfg.CORSAllowedOrigins)(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)
	return handler
}
