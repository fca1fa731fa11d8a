package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContentPostsPayload(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"hello":"world"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hi"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v1beta", "test-key", 0)
	raw, err := c.GenerateContent(context.Background(), "gemini-test", map[string]string{"hello": "world"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"candidates":[{"content":{"parts":[{"text":"hi"}]}}]}`, string(raw))
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerateContentReturnsVendorErrorBody(t *testing.T) {
	vendorErr := `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(vendorErr))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", 0)
	raw, err := c.GenerateContent(context.Background(), "m", struct{}{})
	require.NoError(t, err)
	assert.JSONEq(t, vendorErr, string(raw))
}

func TestGenerateContentInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", 0)
	_, err := c.GenerateContent(context.Background(), "m", struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestGenerateContentNetworkFailureHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	c := NewClient(baseURL, "super-secret", 0)
	_, err := c.GenerateContent(context.Background(), "m", struct{}{})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "super-secret")
}

func TestNewTextRequestShape(t *testing.T) {
	b, err := json.Marshal(NewTextRequest("prompt text"))
	require.NoError(t, err)

	var got struct {
		Contents []struct {
			Role  string `json:"role"`
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
		GenerationConfig map[string]any `json:"generationConfig"`
		Model            *string        `json:"model"`
	}
	require.NoError(t, json.Unmarshal(b, &got))

	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.Equal(t, "prompt text", got.Contents[0].Parts[0].Text)

	assert.InDelta(t, 0.9, got.GenerationConfig["temperature"], 1e-6)
	assert.InDelta(t, 1.0, got.GenerationConfig["topP"], 1e-6)
	assert.InDelta(t, 1.0, got.GenerationConfig["topK"], 1e-6)
	assert.Equal(t, "text/plain", got.GenerationConfig["responseMimeType"])
	assert.NotContains(t, got.GenerationConfig, "speechConfig")
	assert.Nil(t, got.Model)
}

func TestNewSpeechRequestShape(t *testing.T) {
	b, err := json.Marshal(NewSpeechRequest("say this", "tts-model", "Gacrux"))
	require.NoError(t, err)

	var got struct {
		Contents []struct {
			Role  string `json:"role"`
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
		GenerationConfig struct {
			ResponseModalities []string `json:"responseModalities"`
			SpeechConfig       struct {
				VoiceConfig struct {
					PrebuiltVoiceConfig struct {
						VoiceName string `json:"voiceName"`
					} `json:"prebuiltVoiceConfig"`
				} `json:"voiceConfig"`
			} `json:"speechConfig"`
		} `json:"generationConfig"`
		Model string `json:"model"`
	}
	require.NoError(t, json.Unmarshal(b, &got))

	require.Len(t, got.Contents, 1)
	assert.Empty(t, got.Contents[0].Role)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.Equal(t, "say this", got.Contents[0].Parts[0].Text)
	assert.Equal(t, []string{"AUDIO"}, got.GenerationConfig.ResponseModalities)
	assert.Equal(t, "Gacrux", got.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)
	assert.Equal(t, "tts-model", got.Model)
}
