package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ALIAQIL/multilang-chat/internal/domain"
)

const systemPrompt = "You are a translator. Translate exactly what is provided."

// Client implementa Translator contra una API chat-completions compatible con OpenAI.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient construye un cliente HTTP apuntando a la API de chat completions.
func NewClient(baseURL, apiKey, model string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

// Translate pide la traducción de text a targetLanguage y devuelve solo el
// texto traducido, sin comillas ni comentarios que el modelo pudiera añadir.
func (c *Client) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following message to %s. Return only the translated text without any quotation:\n\n%s",
		domain.DisplayLanguage(targetLanguage), text,
	)

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   1000,
		Temperature: 0.3,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ProviderError{Cause: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &ProviderError{Cause: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &ProviderError{Cause: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Cause: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("translator error status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return "", &ProviderError{Cause: fmt.Errorf("http error: status=%d", resp.StatusCode)}
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", &ProviderError{Cause: fmt.Errorf("unmarshal response: %w", err)}
	}

	if cr.Error != nil {
		return "", &ProviderError{Cause: fmt.Errorf("api error: %s", cr.Error.Message)}
	}

	if len(cr.Choices) == 0 {
		return "", &ProviderError{Cause: fmt.Errorf("empty response")}
	}

	translated := cleanTranslation(cr.Choices[0].Message.Content)
	if translated == "" {
		return "", &ProviderError{Cause: fmt.Errorf("empty translation")}
	}
	return translated, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
