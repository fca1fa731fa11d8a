package model

// TextRequest representa a requisição para o endpoint de geração de texto
type TextRequest struct {
	UserMessage string `json:"userMessage"`
}

// AudioRequest representa a requisição para o endpoint de geração de áudio
type AudioRequest struct {
	Text string `json:"text"`
}

// ErrorResponse é o corpo de todas as respostas de erro
type ErrorResponse struct {
	Error string `json:"error"`
}
