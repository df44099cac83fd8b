package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/pocket-pastor/internal/auth"
	"github.com/taiwoajasa245/pocket-pastor/internal/bible"
	"github.com/taiwoajasa245/pocket-pastor/internal/chat"
	"github.com/taiwoajasa245/pocket-pastor/internal/cluster"
	"github.com/taiwoajasa245/pocket-pastor/internal/database"
	"github.com/taiwoajasa245/pocket-pastor/internal/highlight"
	"github.com/taiwoajasa245/pocket-pastor/internal/reader"
	"github.com/taiwoajasa245/pocket-pastor/internal/segmenter"
	"github.com/taiwoajasa245/pocket-pastor/pkg/config"
	"github.com/taiwoajasa245/pocket-pastor/pkg/logger"
)

// Deps are the backing stores. DB may be nil when the repositories are
// in-memory.
type Deps struct {
	DB            database.Service
	Redis         *redis.Client
	Bible         bible.Provider
	HighlightRepo highlight.Repository
	ClusterRepo   cluster.Repository
}

type Server struct {
	port     string
	cfg      *config.Config
	log      *zap.Logger
	db       database.Service
	redis    *redis.Client
	tokens   *auth.Tokens
	handler  http.Handler
	cancel   context.CancelFunc
	sessions *reader.Sessions

	highlights *highlight.Service
	clusters   *cluster.Service
	reader     *reader.Service
	handoff    *chat.RedisHandoff
}

// NewServer constructs the app server with all dependencies injected.
func NewServer(cfg *config.Config, deps Deps, log *zap.Logger) (*Server, error) {
	log = logger.OrNop(log)

	if cfg.JWTSecret == "" {
		return nil, auth.ErrMissingSecret
	}

	highlightRepo, clusterRepo := deps.HighlightRepo, deps.ClusterRepo
	if highlightRepo == nil || clusterRepo == nil {
		if deps.DB == nil {
			return nil, fmt.Errorf("no database and no repositories configured")
		}
		stats := deps.DB.Health()
		if stats["status"] != "up" {
			return nil, fmt.Errorf("database connection failed: %s", stats["error"])
		}
		log.Info("database connection successful", zap.String("open_connections", stats["open_connections"]))
		if highlightRepo == nil {
			highlightRepo = highlight.NewRepository(deps.DB)
		}
		if clusterRepo == nil {
			clusterRepo = cluster.NewRepository(deps.DB)
		}
	}

	provider := deps.Bible
	if deps.Redis != nil {
		provider = bible.NewCachedProvider(provider, deps.Redis, cfg.ChapterCacheTTL, log.Named("chapters"))
	}

	s := &Server{
		port:       cfg.Port,
		cfg:        cfg,
		log:        log,
		db:         deps.DB,
		redis:      deps.Redis,
		tokens:     auth.NewTokens(cfg.JWTSecret, 7*24*time.Hour),
		sessions:   reader.NewSessions(cfg.ReaderSessionTTL, log.Named("sessions")),
		highlights: highlight.NewService(highlightRepo, log.Named("highlights")),
		clusters:   cluster.NewService(clusterRepo, log.Named("clusters")),
	}

	rd := reader.Deps{
		Bible:       provider,
		Segmenter:   segmenter.New(log.Named("segmenter")),
		Highlights:  s.highlights,
		Clusters:    s.clusters,
		ScrollDelay: cfg.ScrollDelay,
		Log:         log.Named("reader"),
	}
	if deps.Redis != nil {
		s.handoff = chat.NewRedisHandoff(deps.Redis)
		rd.Chat = s.handoff
	}
	s.reader = reader.NewService(rd)

	s.handler = s.RegisterRoutes()
	return s, nil
}

// HTTPServer returns the actual *http.Server instance
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", s.port),
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// StartBackgroundJobs runs the reader session janitor.
func (s *Server) StartBackgroundJobs() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	interval := time.Minute
	if s.cfg.AppEnv == "production" {
		interval = 5 * time.Minute
	}
	go s.sessions.Run(ctx, interval)
	s.log.Info("reader session janitor started", zap.Duration("interval", interval))
}

func (s *Server) StopBackgroundJobs() {
	if s.cancel != nil {
		s.cancel()
		s.log.Info("background jobs stopped gracefully")
	}
}
