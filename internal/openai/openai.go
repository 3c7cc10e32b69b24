// Package openai implements the zeeky.Provider interface against OpenAI's
// Chat Completions API.
package openai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/zeekyhq/zeeky/internal/zeeky"
)

const (
	ProviderName   = "openai"
	DefaultBaseURL = "https://api.openai.com/v1"
)

// ChatCompletionsRequest represents the request body for the Chat
// Completions API.
type ChatCompletionsRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// ChatMessage represents a message in the conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionsResponse represents the response from the Chat Completions
// API.
type ChatCompletionsResponse struct {
	ID      string    `json:"id"`
	Choices []Choice  `json:"choices"`
	Error   *APIError `json:"error,omitempty"`
}

// Choice represents a single completion choice.
type Choice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// APIError represents an error in the API response.
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Config defines the configuration interface for the OpenAI provider.
type Config interface {
	GetBaseURL(provider string) (string, error)
	GetToken(provider string) (string, error)
}

// Provider implements the zeeky.Provider interface for OpenAI.
type Provider struct {
	config Config
	client *http.Client
}

// NewProvider creates a new OpenAI provider instance.
func NewProvider(config Config) *Provider {
	return &Provider{
		config: config,
		client: &http.Client{},
	}
}

// Send submits the full transcript to the Chat Completions endpoint and
// returns the first choice's message content, trimmed of surrounding
// whitespace.
func (p *Provider) Send(transcript []zeeky.Message, model string) (string, error) {
	token, err := p.config.GetToken(ProviderName)
	if err != nil {
		return "", &zeeky.ConfigurationError{Reason: err.Error()}
	}

	baseURL, err := p.config.GetBaseURL(ProviderName)
	if err != nil {
		return "", &zeeky.ConfigurationError{Reason: err.Error()}
	}

	messages := make([]ChatMessage, 0, len(transcript))
	for _, msg := range transcript {
		messages = append(messages, ChatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	reqBody := ChatCompletionsRequest{
		Model:    model,
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", &zeeky.ProviderError{Provider: ProviderName, Err: fmt.Errorf("error marshaling request: %v", err)}
	}

	req, err := http.NewRequest("POST", baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &zeeky.ProviderError{Provider: ProviderName, Err: fmt.Errorf("error creating request: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &zeeky.ProviderError{Provider: ProviderName, Err: fmt.Errorf("error sending request: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &zeeky.ProviderError{Provider: ProviderName, Err: fmt.Errorf("error reading response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		// Try to parse a structured error message
		var errResp ChatCompletionsResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil {
			return "", &zeeky.ProviderError{Provider: ProviderName, Err: fmt.Errorf("API error: %s (HTTP %d)", errResp.Error.Message, resp.StatusCode)}
		}
		return "", &zeeky.ProviderError{Provider: ProviderName, Err: fmt.Errorf("API request failed (HTTP %d): %s", resp.StatusCode, string(body))}
	}

	var result ChatCompletionsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &zeeky.ProviderError{Provider: ProviderName, Err: fmt.Errorf("error parsing response: %v", err)}
	}

	if len(result.Choices) == 0 {
		return "", &zeeky.ProviderError{Provider: ProviderName, Err: fmt.Errorf("API returned zero completion choices")}
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
