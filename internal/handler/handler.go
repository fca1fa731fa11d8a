package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/vitormoschetta/go-gemini-proxy/internal/logger"
	"github.com/vitormoschetta/go-gemini-proxy/internal/model"
	"github.com/vitormoschetta/go-gemini-proxy/internal/service"
)

const (
	msgAPIKeyNotConfigured = "Server error: API key is not configured."
	msgTextUpstreamFailed  = "Failed to fetch text from Gemini API."
	msgAudioUpstreamFailed = "Failed to fetch audio from Gemini API."
	msgInvalidJSON         = "Invalid JSON format"
)

// Generator é satisfeito por *service.GenerationService
type Generator interface {
	GenerateText(ctx context.Context, userMessage string) (json.RawMessage, error)
	GenerateAudio(ctx context.Context, text string) (json.RawMessage, error)
}

// Handler contém as dependências necessárias para os handlers HTTP
type Handler struct {
	generator Generator
}

// NewHandler cria uma nova instância do Handler
func NewHandler(generator Generator) *Handler {
	return &Handler{
		generator: generator,
	}
}

// HandleHealth retorna o status de saúde do servidor
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		logger.Errorf("Failed to write response: %v", err)
	}
}

// HandleGenerateText repassa a mensagem do usuário ao Gemini e devolve o JSON da resposta sem alterações
func (h *Handler) HandleGenerateText(w http.ResponseWriter, r *http.Request) {
	var req model.TextRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.generator.GenerateText(r.Context(), req.UserMessage)
	if err != nil {
		writeGenerationError(w, r, err, msgTextUpstreamFailed)
		return
	}

	writeRaw(w, result)
}

// HandleGenerateAudio pede ao Gemini TTS o áudio do texto e devolve o JSON da resposta sem alterações
func (h *Handler) HandleGenerateAudio(w http.ResponseWriter, r *http.Request) {
	var req model.AudioRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.generator.GenerateAudio(r.Context(), req.Text)
	if err != nil {
		writeGenerationError(w, r, err, msgAudioUpstreamFailed)
		return
	}

	writeRaw(w, result)
}

// decodeBody aceita corpo vazio (campos ficam vazios) e rejeita apenas JSON malformado
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		logger.Warnf("Error parsing JSON on %s: %v", r.URL.Path, err)
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	return true
}

// writeGenerationError converte os erros do serviço em 500 com mensagem fixa; o detalhe fica só no log
func writeGenerationError(w http.ResponseWriter, r *http.Request, err error, upstreamMsg string) {
	reqID := middleware.GetReqID(r.Context())

	if errors.Is(err, service.ErrAPIKeyNotConfigured) {
		logger.Errorf("[%s] %s rejected: %v", reqID, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, msgAPIKeyNotConfigured)
		return
	}

	logger.Errorf("[%s] Proxy error on %s: %v", reqID, r.URL.Path, err)
	writeError(w, http.StatusInternalServerError, upstreamMsg)
}

func writeRaw(w http.ResponseWriter, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.Errorf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg}); err != nil {
		logger.Errorf("Failed to write response: %v", err)
	}
}
