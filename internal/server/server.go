package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vitormoschetta/go-gemini-proxy/internal/config"
	"github.com/vitormoschetta/go-gemini-proxy/internal/logger"
)

// Handlers agrupa os handlers HTTP registrados no router
type Handlers struct {
	Health        http.HandlerFunc
	GenerateText  http.HandlerFunc
	GenerateAudio http.HandlerFunc
}

// Server representa o servidor HTTP com todas as dependências
type Server struct {
	Addr      string
	StaticDir string
	Router    chi.Router
}

// NewServer cria uma nova instância do servidor
func NewServer(cfg *config.Config) *Server {
	return &Server{
		Addr:      cfg.Addr(),
		StaticDir: cfg.Server.StaticDir,
	}
}

// SetupRouter configura as rotas e middlewares do Chi.
// Tudo que não é /api ou /health é servido do diretório estático.
func (s *Server) SetupRouter(h Handlers) {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logger.Logger(),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	// método sem rota responde 404, como o servidor estático
	r.MethodNotAllowed(http.NotFound)

	r.Get("/health", h.Health)

	// API Routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-text", h.GenerateText)
		r.Post("/generate-audio", h.GenerateAudio)
	})

	static := http.FileServer(http.Dir(s.StaticDir))
	r.Get("/*", static.ServeHTTP)
	r.Head("/*", static.ServeHTTP)

	s.Router = r
}

// Start inicia o servidor HTTP com graceful shutdown.
// Sem WriteTimeout: a geração de áudio pode demorar mais que um timeout fixo.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Server listening on %s", s.Addr)
		logger.Infof("Serving static files from %s", s.StaticDir)
		logger.Info("Endpoints: POST /api/generate-text, POST /api/generate-audio, GET /health")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
