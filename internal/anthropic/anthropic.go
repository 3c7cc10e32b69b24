// Package anthropic implements the zeeky.Provider interface against
// Anthropic's Messages API.
package anthropic

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
	ProviderName     = "anthropic"
	DefaultBaseURL   = "https://api.anthropic.com/v1"
	AnthropicVersion = "2023-06-01"

	// DefaultMaxTokens caps reply generation on every request.
	DefaultMaxTokens = 1024
)

// ModelPrefixes lists the model-name prefixes this provider is dispatched
// on. Matching is case-sensitive.
var ModelPrefixes = []string{"claude", "anthropic"}

// MessagesAPIRequest represents the request body for the Messages API.
// The transcript is passed through uniformly: the system message travels as
// a regular role entry among the messages, not in a dedicated system slot.
type MessagesAPIRequest struct {
	Model     string         `json:"model"`
	MaxTokens int            `json:"max_tokens"`
	Messages  []MessageInput `json:"messages"`
}

// MessageInput represents a message in the conversation.
type MessageInput struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MessagesAPIResponse represents the response from the Messages API.
type MessagesAPIResponse struct {
	ID      string            `json:"id"`
	Type    string            `json:"type"`
	Role    string            `json:"role"`
	Content []ResponseContent `json:"content"`
	Model   string            `json:"model"`
	Error   *APIError         `json:"error,omitempty"`
}

// ResponseContent represents a content block in the response.
type ResponseContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// APIError represents an error in the API response.
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Config defines the configuration interface for the Anthropic provider.
type Config interface {
	GetBaseURL(provider string) (string, error)
	GetToken(provider string) (string, error)
}

// Provider implements the zeeky.Provider interface for Anthropic.
type Provider struct {
	config Config
	client *http.Client
}

// NewProvider creates a new Anthropic provider instance.
func NewProvider(config Config) *Provider {
	return &Provider{
		config: config,
		client: &http.Client{},
	}
}

// Send submits the full transcript to the Messages endpoint and returns the
// text of every content block in the response concatenated in order, with no
// separator. The credential is resolved at call time; if it is absent the
// call fails with a ConfigurationError before any network attempt.
func (p *Provider) Send(transcript []zeeky.Message, model string) (string, error) {
	token, err := p.config.GetToken(ProviderName)
	if err != nil {
		return "", &zeeky.ConfigurationError{Reason: err.Error()}
	}

	baseURL, err := p.config.GetBaseURL(ProviderName)
	if err != nil {
		return "", &zeeky.ConfigurationError{Reason: err.Error()}
	}

	messages := make([]MessageInput, 0, len(transcript))
	for _, msg := range transcript {
		messages = append(messages, MessageInput{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	reqBody := MessagesAPIRequest{
		Model:     model,
		MaxTokens: DefaultMaxTokens,
		Messages:  messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", &zeeky.ProviderError{Provider: ProviderName, Err: fmt.Errorf("error marshaling request: %v", err)}
	}

	req, err := http.NewRequest("POST", baseURL+"/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &zeeky.ProviderError{Provider: ProviderName, Err: fmt.Errorf("error creating request: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", token)
	req.Header.Set("anthropic-version", AnthropicVersion)

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
		var errResp MessagesAPIResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil {
			return "", &zeeky.ProviderError{Provider: ProviderName, Err: fmt.Errorf("API error [%s]: %s (HTTP %d)", errResp.Error.Type, errResp.Error.Message, resp.StatusCode)}
		}
		return "", &zeeky.ProviderError{Provider: ProviderName, Err: fmt.Errorf("API request failed (HTTP %d): %s", resp.StatusCode, string(body))}
	}

	var result MessagesAPIResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &zeeky.ProviderError{Provider: ProviderName, Err: fmt.Errorf("error parsing response: %v", err)}
	}

	if result.Error != nil {
		return "", &zeeky.ProviderError{Provider: ProviderName, Err: fmt.Errorf("API error [%s]: %s (id=%s)", result.Error.Type, result.Error.Message, result.ID)}
	}

	var reply strings.Builder
	for _, content := range result.Content {
		reply.WriteString(content.Text)
	}

	return reply.String(), nil
}
