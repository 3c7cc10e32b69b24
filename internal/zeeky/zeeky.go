// Package zeeky provides the core abstractions for the Zeeky assistant.
// It defines the conversation Message type, the Provider interface that all
// LLM provider implementations (openai, anthropic, etc.) must implement, and
// the dispatch table that selects a provider for a given model name.
package zeeky

import "strings"

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"

	// DefaultSystemPrompt is the persona used when none is supplied.
	DefaultSystemPrompt = "You are Zeeky, an all-in-one ultimate AI assistant. Be helpful, concise, and friendly."
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Provider defines the interface for LLM providers.
// Send submits the full ordered transcript (system message first) to the
// remote API and returns the generated reply text. It blocks on network I/O.
type Provider interface {
	Send(transcript []Message, model string) (string, error)
}

// DispatchRule routes model names matching any of its prefixes to a provider.
// Prefix matching is case-sensitive: "Claude-x" does not match "claude".
type DispatchRule struct {
	Name     string
	Prefixes []string
	Provider Provider
}

// Resolver selects a Provider for a model name. Rules are checked in order;
// models matching none of them fall back to the default provider. Adding a
// provider is a new table entry, not new branch logic.
type Resolver struct {
	rules        []DispatchRule
	fallbackName string
	fallback     Provider
}

// NewResolver creates a Resolver with the given fallback provider and rules.
func NewResolver(fallbackName string, fallback Provider, rules ...DispatchRule) *Resolver {
	return &Resolver{
		rules:        rules,
		fallbackName: fallbackName,
		fallback:     fallback,
	}
}

// Resolve returns the provider responsible for the given model name.
func (r *Resolver) Resolve(model string) Provider {
	if rule := r.match(model); rule != nil {
		return rule.Provider
	}
	return r.fallback
}

// ResolveName returns the name of the provider responsible for the model.
func (r *Resolver) ResolveName(model string) string {
	if rule := r.match(model); rule != nil {
		return rule.Name
	}
	return r.fallbackName
}

func (r *Resolver) match(model string) *DispatchRule {
	for i := range r.rules {
		for _, prefix := range r.rules[i].Prefixes {
			if strings.HasPrefix(model, prefix) {
				return &r.rules[i]
			}
		}
	}
	return nil
}
