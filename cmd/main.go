package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vitormoschetta/go-gemini-proxy/internal/config"
	"github.com/vitormoschetta/go-gemini-proxy/internal/gemini"
	"github.com/vitormoschetta/go-gemini-proxy/internal/handler"
	"github.com/vitormoschetta/go-gemini-proxy/internal/logger"
	"github.com/vitormoschetta/go-gemini-proxy/internal/server"
	"github.com/vitormoschetta/go-gemini-proxy/internal/service"
)

func main() {
	configFile := flag.String("c", "", "optional config file (json or yaml)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found or could not be loaded")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Setup(cfg.Log.Level, cfg.Log.File, cfg.Log.MaxAge); err != nil {
		logger.Fatalf("Failed to set up logging: %v", err)
	}

	if cfg.Gemini.APIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set - generation endpoints will return a configuration error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Cliente Gemini e serviço de geração
	client := gemini.NewClient(cfg.Gemini.BaseURL, cfg.Gemini.APIKey, cfg.Gemini.Timeout)
	svc := service.NewGenerationService(service.Options{
		APIKey:    cfg.Gemini.APIKey,
		TextModel: cfg.Gemini.TextModel,
		TTSModel:  cfg.Gemini.TTSModel,
		TTSVoice:  cfg.Gemini.TTSVoice,
	}, client)

	h := handler.NewHandler(svc)

	srv := server.NewServer(cfg)
	srv.SetupRouter(server.Handlers{
		Health:        h.HandleHealth,
		GenerateText:  h.HandleGenerateText,
		GenerateAudio: h.HandleGenerateAudio,
	})

	if err := srv.Start(ctx); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}
