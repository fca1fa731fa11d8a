package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vitormoschetta/go-gemini-proxy/internal/gemini"
)

// ErrAPIKeyNotConfigured indica que o servidor não tem chave da API; nenhuma chamada externa é feita
var ErrAPIKeyNotConfigured = errors.New("gemini api key is not configured")

// UpstreamError envolve qualquer falha na chamada ao Gemini (rede, timeout ou JSON inválido)
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ContentGenerator é satisfeito por *gemini.Client
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, payload any) (json.RawMessage, error)
}

const (
	personaPrompt = `You are a wise, old man persona known as "Valyachan" from a Malayalam movie. ` +
		`Your job is to respond to user messages with short, funny, and iconic Malayalam movie dialogues. ` +
		`Do not break character. Do not provide translations or explanations. ` +
		`The response must be a single, witty Malayalam movie dialogue. ` +
		`Respond to the following user message: "%s".`

	speechPrompt = `Say in a calm, mature, and friendly male voice with a clear Indian-English accent, ` +
		`using the Malayalam script: "%s"`
)

type Options struct {
	APIKey    string
	TextModel string
	TTSModel  string
	TTSVoice  string
}

// GenerationService monta os prompts e faz uma única chamada ao Gemini por requisição.
// Não guarda estado entre requisições.
type GenerationService struct {
	opts      Options
	generator ContentGenerator
}

func NewGenerationService(opts Options, generator ContentGenerator) *GenerationService {
	return &GenerationService{
		opts:      opts,
		generator: generator,
	}
}

// GenerateText responde com o JSON bruto do Gemini para a mensagem do usuário na voz do Valyachan.
// Mensagem vazia é repassada como está.
func (s *GenerationService) GenerateText(ctx context.Context, userMessage string) (json.RawMessage, error) {
	if s.opts.APIKey == "" {
		return nil, ErrAPIKeyNotConfigured
	}

	payload := gemini.NewTextRequest(PersonaPrompt(userMessage))
	raw, err := s.generator.GenerateContent(ctx, s.opts.TextModel, payload)
	if err != nil {
		return nil, &UpstreamError{Op: "generate text", Err: err}
	}
	return raw, nil
}

// GenerateAudio pede ao modelo de TTS a leitura do texto com a voz configurada
func (s *GenerationService) GenerateAudio(ctx context.Context, text string) (json.RawMessage, error) {
	if s.opts.APIKey == "" {
		return nil, ErrAPIKeyNotConfigured
	}

	payload := gemini.NewSpeechRequest(SpeechPrompt(text), s.opts.TTSModel, s.opts.TTSVoice)
	raw, err := s.generator.GenerateContent(ctx, s.opts.TTSModel, payload)
	if err != nil {
		return nil, &UpstreamError{Op: "generate audio", Err: err}
	}
	return raw, nil
}

func PersonaPrompt(userMessage string) string {
	return fmt.Sprintf(personaPrompt, userMessage)
}

func SpeechPrompt(text string) string {
	return fmt.Sprintf(speechPrompt, text)
}
