package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/taiwoajasa245/pocket-pastor/docs"
	"github.com/taiwoajasa245/pocket-pastor/internal/chat"
	"github.com/taiwoajasa245/pocket-pastor/internal/cluster"
	"github.com/taiwoajasa245/pocket-pastor/internal/highlight"
	"github.com/taiwoajasa245/pocket-pastor/internal/reader"
	"github.com/taiwoajasa245/pocket-pastor/pkg/response"
)

const basePath = "/pocket-pastor/v1"

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.ServerIsWorking)
	r.Get("/health", s.HealthHandler)

	r.Get(basePath+"/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Route(basePath, func(r chi.Router) {
		r.Get("/", s.ServerIsWorking)
		s.loadHighlightRoutes(r)
		s.loadClusterRoutes(r)
		s.loadReaderRoutes(r)
		s.loadChatRoutes(r)
	})

	return r
}

func (s *Server) ServerIsWorking(w http.ResponseWriter, r *http.Request) {
	resp := make(map[string]string)
	resp["message"] = "Welcome to Pocket Pastor reader api"
	response.Success(w, resp, "Success")
}

// HealthHandler reports database and Redis reachability.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{}
	up := true

	if s.db != nil {
		stats := s.db.Health()
		health["database"] = stats
		up = up && stats["status"] == "up"
	}
	if s.redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		status := "up"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			status = "down"
			up = false
		}
		health["redis"] = map[string]string{"status": status}
	}
	health["reader_sessions"] = s.sessions.Len()

	if !up {
		response.JSON(w, http.StatusServiceUnavailable, response.APIResponse{
			Status:  http.StatusServiceUnavailable,
			Message: "degraded",
			Data:    health,
		})
		return
	}
	response.Success(w, health, "healthy")
}

func (s *Server) loadHighlightRoutes(router chi.Router) {
	h := highlight.NewHighlightHandler(s.highlights)

	router.Group(func(r chi.Router) {
		r.Use(s.tokens.OptionalAuth)
		r.Get("/highlights/{bibleId}/{chapterId}", h.GetChapterHighlightsHandler)
		r.Post("/highlights", h.SaveHighlightHandler)
		r.Delete("/highlights", h.RemoveHighlightHandler)
		r.Post("/highlights/toggle", h.ToggleHighlightHandler)
	})
}

func (s *Server) loadClusterRoutes(router chi.Router) {
	h := cluster.NewClusterHandler(s.clusters)

	router.Group(func(r chi.Router) {
		r.Use(s.tokens.OptionalAuth)
		r.Get("/clusters", h.GetAllClustersHandler)
		r.Post("/clusters", h.CreateClusterHandler)
		r.Post("/clusters/toggle", h.ToggleFavoriteHandler)
		r.Put("/clusters/order", h.UpdateOrderHandler)
		r.Delete("/clusters/verses", h.RemoveVersesHandler)
		r.Get("/clusters/{bibleId}/{chapterId}", h.GetChapterClustersHandler)
		r.Delete("/clusters/{id}", h.DeleteClusterHandler)
	})
}

func (s *Server) loadReaderRoutes(router chi.Router) {
	h := reader.NewReaderHandler(s.reader, s.sessions)

	router.Group(func(r chi.Router) {
		r.Use(s.tokens.OptionalAuth)
		r.Get("/chapters/{bibleId}/{chapterId}", h.GetChapterHandler)

		r.Post("/reader/sessions", h.OpenSessionHandler)
		r.Route("/reader/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.GetSessionHandler)
			r.Post("/tap", h.TapVerseHandler)
			r.Post("/select-text", h.SelectTextHandler)
			r.Delete("/search-highlights/{verse}", h.DismissSearchHighlightHandler)
			for _, action := range []string{
				reader.ActionCancel,
				reader.ActionHighlight,
				reader.ActionFavorite,
				reader.ActionAsk,
				reader.ActionCopy,
			} {
				r.Post("/"+action, h.ActionHandler(action))
			}
		})
	})
}

func (s *Server) loadChatRoutes(router chi.Router) {
	if s.handoff == nil {
		return
	}
	h := chat.NewChatHandler(s.handoff)

	router.Group(func(r chi.Router) {
		r.Use(s.tokens.AuthMiddleware)
		r.Get("/chat/pending", h.PendingPromptsHandler)
	})
}
