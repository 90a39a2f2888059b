package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/smartcart/internal/handler"
	"github.com/dukerupert/smartcart/internal/middleware"
	"github.com/dukerupert/smartcart/internal/repository"
	ws "github.com/dukerupert/smartcart/internal/websocket"
)

type Server struct {
	repo        *repository.Repository
	hub         *ws.Hub
	listH       *handler.ListHandler
	itemH       *handler.ItemHandler
	categoryH   *handler.CategoryHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// New wires the HTTP API over repo. wsConnectLimit caps websocket
// connection attempts per client IP per minute; zero disables it.
func New(repo *repository.Repository, wsConnectLimit int, logger *slog.Logger) *Server {
	var rl *middleware.RateLimiter
	if wsConnectLimit > 0 {
		rl = middleware.NewRateLimiter(wsConnectLimit, time.Minute)
	}

	return &Server{
		repo:        repo,
		hub:         ws.NewHub(logger.With("component", "websocket")),
		listH:       handler.NewListHandler(repo, logger.With("component", "list")),
		itemH:       handler.NewItemHandler(repo, logger.With("component", "item")),
		categoryH:   handler.NewCategoryHandler(repo, logger.With("component", "category")),
		rateLimiter: rl,
		logger:      logger,
	}
}

// RateLimiter returns the websocket rate limiter for cleanup tasks. It is
// nil when limiting is disabled.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Hub returns the websocket hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

// NotifyShutdown tells connected websocket clients the server is going away.
func (s *Server) NotifyShutdown() {
	s.hub.Broadcast(ws.Message{Type: ws.TypeShutdown})
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Lists
	mux.HandleFunc("GET /api/lists", s.listH.List)
	mux.HandleFunc("POST /api/lists", s.listH.Create)
	mux.HandleFunc("GET /api/lists/{id}", s.listH.Get)
	mux.HandleFunc("PUT /api/lists/{id}", s.listH.Rename)
	mux.HandleFunc("POST /api/lists/{id}/complete", s.listH.Complete)
	mux.HandleFunc("DELETE /api/lists/{id}", s.listH.Delete)
	mux.HandleFunc("GET /api/lists/{id}/progress", s.listH.Progress)
	mux.HandleFunc("POST /api/seed", s.listH.Seed)

	// Items
	mux.HandleFunc("GET /api/lists/{list_id}/items", s.itemH.List)
	mux.HandleFunc("POST /api/lists/{list_id}/items", s.itemH.Create)
	mux.HandleFunc("PUT /api/lists/{list_id}/items/{id}", s.itemH.Update)
	mux.HandleFunc("DELETE /api/lists/{list_id}/items/{id}", s.itemH.Delete)
	mux.HandleFunc("POST /api/lists/{list_id}/items/{id}/toggle", s.itemH.Toggle)
	mux.HandleFunc("POST /api/lists/{list_id}/items/{id}/move-up", s.itemH.MoveUp)
	mux.HandleFunc("POST /api/lists/{list_id}/items/{id}/move-down", s.itemH.MoveDown)

	// Categories
	mux.HandleFunc("GET /api/categories", s.categoryH.List)
	mux.HandleFunc("POST /api/categories", s.categoryH.Create)
	mux.HandleFunc("PUT /api/categories/{id}", s.categoryH.Update)
	mux.HandleFunc("DELETE /api/categories/{id}", s.categoryH.Delete)

	// WebSocket snapshot streams
	wsLogger := s.logger.With("component", "websocket")
	limited := middleware.RateLimit(s.rateLimiter)
	mux.Handle("GET /ws/lists", limited(ws.HandleLists(s.hub, s.repo, wsLogger)))
	mux.Handle("GET /ws/lists/{list_id}/items", limited(ws.HandleItems(s.hub, s.repo, wsLogger)))
	mux.Handle("GET /ws/categories", limited(ws.HandleCategories(s.hub, s.repo, wsLogger)))

	return middleware.RequestID(middleware.RequestLogger(s.logger.With("component", "http"))(mux))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":      "ok",
		"ws_clients":  s.hub.ClientCount(),
		"subscribers": s.repo.Feed().SubscriberCount(),
	})
}
