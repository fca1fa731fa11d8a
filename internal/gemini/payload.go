package gemini

import "google.golang.org/genai"

const (
	roleUser          = "user"
	mimeTypeTextPlain = "text/plain"
)

// GenerateContentRequest é o corpo REST do endpoint generateContent.
// Os tipos de conteúdo e de voz vêm do SDK genai; o envelope segue o formato REST.
type GenerateContentRequest struct {
	Contents         []*genai.Content  `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
	Model            string            `json:"model,omitempty"`
}

type GenerationConfig struct {
	Temperature        *float32            `json:"temperature,omitempty"`
	TopP               *float32            `json:"topP,omitempty"`
	TopK               *float32            `json:"topK,omitempty"`
	ResponseMIMEType   string              `json:"responseMimeType,omitempty"`
	ResponseModalities []genai.Modality    `json:"responseModalities,omitempty"`
	SpeechConfig       *genai.SpeechConfig `json:"speechConfig,omitempty"`
}

// NewTextRequest monta o payload de texto com parâmetros fixos:
// temperature 0.9, topP 1, topK 1 e saída em texto puro.
func NewTextRequest(prompt string) *GenerateContentRequest {
	return &GenerateContentRequest{
		Contents: []*genai.Content{
			{
				Role:  roleUser,
				Parts: []*genai.Part{{Text: prompt}},
			},
		},
		GenerationConfig: &GenerationConfig{
			Temperature:      genai.Ptr[float32](0.9),
			TopP:             genai.Ptr[float32](1),
			TopK:             genai.Ptr[float32](1),
			ResponseMIMEType: mimeTypeTextPlain,
		},
	}
}

// NewSpeechRequest monta o payload de TTS: modalidade de resposta AUDIO com uma voz pré-definida
func NewSpeechRequest(prompt, model, voice string) *GenerateContentRequest {
	return &GenerateContentRequest{
		Contents: []*genai.Content{
			{
				Parts: []*genai.Part{{Text: prompt}},
			},
		},
		GenerationConfig: &GenerationConfig{
			ResponseModalities: []genai.Modality{genai.ModalityAudio},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
				},
			},
		},
		Model: model,
	}
}
