package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client envia requisições generateContent para a API REST do Gemini.
// A chave da API vai na query string; a resposta é devolvida sem interpretação.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient cria um Client. timeout zero significa sem limite na chamada externa.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GenerateContent faz exatamente um POST para {BaseURL}/models/{model}:generateContent.
// O status HTTP da resposta não é avaliado: qualquer corpo JSON válido é retornado,
// inclusive erros reportados pelo próprio Gemini.
func (c *Client) GenerateContent(ctx context.Context, model string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(model), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", model, redactKey(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", model, err)
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("invalid JSON response from %s (status %d)", model, resp.StatusCode)
	}

	return json.RawMessage(raw), nil
}

func (c *Client) endpoint(model string) string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.BaseURL, url.PathEscape(model), url.QueryEscape(c.APIKey))
}

// redactKey remove a URL (que contém a chave) das mensagens de erro de transporte
func redactKey(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
