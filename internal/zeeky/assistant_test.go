package zeeky

import (
	"errors"
	"fmt"
	"testing"
)

// stubProvider records what it was sent and returns a canned reply or error.
type stubProvider struct {
	reply string
	err   error

	calls          int
	lastTranscript []Message
	lastModel      string
}

func (s *stubProvider) Send(transcript []Message, model string) (string, error) {
	s.calls++
	s.lastTranscript = append([]Message(nil), transcript...)
	s.lastModel = model
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestNewAssistantDefaults(t *testing.T) {
	resolver := newTestResolver(&stubProvider{}, &stubProvider{})
	assistant := NewAssistant(resolver, "", "")

	if assistant.Model() != DefaultModel {
		t.Errorf("Model() = %q, want %q", assistant.Model(), DefaultModel)
	}

	transcript := assistant.Transcript()
	if len(transcript) != 1 {
		t.Fatalf("new transcript has %d messages, want 1", len(transcript))
	}
	if transcript[0].Role != RoleSystem {
		t.Errorf("first message role = %q, want %q", transcript[0].Role, RoleSystem)
	}
	if transcript[0].Content != DefaultSystemPrompt {
		t.Errorf("system prompt = %q, want default persona", transcript[0].Content)
	}
}

func TestNewAssistantCustomSystemPrompt(t *testing.T) {
	resolver := newTestResolver(&stubProvider{}, &stubProvider{})
	assistant := NewAssistant(resolver, "gpt-4o", "You are a pirate.")

	transcript := assistant.Transcript()
	if transcript[0].Content != "You are a pirate." {
		t.Errorf("system prompt = %q, want custom prompt", transcript[0].Content)
	}
	if assistant.Model() != "gpt-4o" {
		t.Errorf("Model() = %q, want gpt-4o", assistant.Model())
	}
}

func TestChatEcho(t *testing.T) {
	openaiStub := &stubProvider{reply: "Echo: Hello"}
	resolver := newTestResolver(openaiStub, &stubProvider{})
	assistant := NewAssistant(resolver, "", "")

	reply, err := assistant.Chat("Hello")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if reply != "Echo: Hello" {
		t.Errorf("Chat() = %q, want %q", reply, "Echo: Hello")
	}

	want := []Message{
		{Role: RoleSystem, Content: DefaultSystemPrompt},
		{Role: RoleUser, Content: "Hello"},
		{Role: RoleAssistant, Content: "Echo: Hello"},
	}
	transcript := assistant.Transcript()
	if len(transcript) != len(want) {
		t.Fatalf("transcript has %d messages, want %d", len(transcript), len(want))
	}
	for i := range want {
		if transcript[i] != want[i] {
			t.Errorf("transcript[%d] = %+v, want %+v", i, transcript[i], want[i])
		}
	}
}

func TestChatSendsFullTranscript(t *testing.T) {
	openaiStub := &stubProvider{reply: "ok"}
	resolver := newTestResolver(openaiStub, &stubProvider{})
	assistant := NewAssistant(resolver, "gpt-4o-mini", "persona")

	if _, err := assistant.Chat("first"); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if _, err := assistant.Chat("second"); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if openaiStub.lastModel != "gpt-4o-mini" {
		t.Errorf("provider got model %q, want gpt-4o-mini", openaiStub.lastModel)
	}

	// Second call must carry everything: system, first exchange, new input.
	got := openaiStub.lastTranscript
	if len(got) != 4 {
		t.Fatalf("provider got %d messages, want 4", len(got))
	}
	if got[0].Role != RoleSystem {
		t.Errorf("first sent message role = %q, want system", got[0].Role)
	}
	if got[3].Role != RoleUser || got[3].Content != "second" {
		t.Errorf("last sent message = %+v, want user 'second'", got[3])
	}
}

func TestChatTranscriptGrowth(t *testing.T) {
	openaiStub := &stubProvider{reply: "reply"}
	resolver := newTestResolver(openaiStub, &stubProvider{})
	assistant := NewAssistant(resolver, "", "")

	const turns = 5
	for i := 0; i < turns; i++ {
		if _, err := assistant.Chat(fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("Chat() error on turn %d: %v", i, err)
		}
	}

	transcript := assistant.Transcript()
	if want := 1 + 2*turns; len(transcript) != want {
		t.Fatalf("transcript has %d messages after %d turns, want %d", len(transcript), turns, want)
	}

	// Strict alternation after the system message.
	for i := 1; i < len(transcript); i++ {
		want := RoleUser
		if i%2 == 0 {
			want = RoleAssistant
		}
		if transcript[i].Role != want {
			t.Errorf("transcript[%d].Role = %q, want %q", i, transcript[i].Role, want)
		}
	}
}

func TestChatRoutesByModel(t *testing.T) {
	tests := []struct {
		model         string
		wantAnthropic bool
	}{
		{"claude-3-opus", true},
		{"anthropic-v1", true},
		{"Claude-x", false},
		{"gpt-4o-mini", false},
		{"o3", false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			openaiStub := &stubProvider{reply: "from openai"}
			anthropicStub := &stubProvider{reply: "from anthropic"}
			resolver := newTestResolver(openaiStub, anthropicStub)
			assistant := NewAssistant(resolver, tt.model, "")

			if _, err := assistant.Chat("hi"); err != nil {
				t.Fatalf("Chat() error = %v", err)
			}

			if tt.wantAnthropic && anthropicStub.calls != 1 {
				t.Errorf("anthropic calls = %d, want 1", anthropicStub.calls)
			}
			if !tt.wantAnthropic && openaiStub.calls != 1 {
				t.Errorf("openai calls = %d, want 1", openaiStub.calls)
			}
		})
	}
}

func TestChatProviderFailureKeepsUserMessage(t *testing.T) {
	provErr := &ProviderError{Provider: "openai", Err: errors.New("connection refused")}
	openaiStub := &stubProvider{err: provErr}
	resolver := newTestResolver(openaiStub, &stubProvider{})
	assistant := NewAssistant(resolver, "", "")

	_, err := assistant.Chat("doomed")
	if err == nil {
		t.Fatal("Chat() error = nil, want provider error")
	}

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("Chat() error = %v, want *ProviderError", err)
	}
	if pe.Provider != "openai" {
		t.Errorf("ProviderError.Provider = %q, want openai", pe.Provider)
	}

	// The user message stays; no assistant entry is appended.
	transcript := assistant.Transcript()
	if len(transcript) != 2 {
		t.Fatalf("transcript has %d messages after failure, want 2", len(transcript))
	}
	if transcript[1].Role != RoleUser || transcript[1].Content != "doomed" {
		t.Errorf("transcript[1] = %+v, want the user message", transcript[1])
	}
}

func TestChatConfigurationErrorKeepsUserMessage(t *testing.T) {
	confErr := &ConfigurationError{Reason: "anthropic token is not configured"}
	anthropicStub := &stubProvider{err: confErr}
	resolver := newTestResolver(&stubProvider{}, anthropicStub)
	assistant := NewAssistant(resolver, "claude-3-opus", "")

	_, err := assistant.Chat("hi")

	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("Chat() error = %v, want *ConfigurationError", err)
	}

	transcript := assistant.Transcript()
	if len(transcript) != 2 {
		t.Fatalf("transcript has %d messages after failure, want 2", len(transcript))
	}
	if transcript[1].Role != RoleUser {
		t.Errorf("transcript[1].Role = %q, want user", transcript[1].Role)
	}
}

func TestChatAcceptsEmptyInput(t *testing.T) {
	openaiStub := &stubProvider{reply: "still here"}
	resolver := newTestResolver(openaiStub, &stubProvider{})
	assistant := NewAssistant(resolver, "", "")

	reply, err := assistant.Chat("")
	if err != nil {
		t.Fatalf("Chat(\"\") error = %v", err)
	}
	if reply != "still here" {
		t.Errorf("Chat(\"\") = %q, want %q", reply, "still here")
	}
	if openaiStub.lastTranscript[1].Content != "" {
		t.Errorf("user message content = %q, want empty string passed verbatim", openaiStub.lastTranscript[1].Content)
	}
}

func TestTranscriptReturnsCopy(t *testing.T) {
	resolver := newTestResolver(&stubProvider{reply: "ok"}, &stubProvider{})
	assistant := NewAssistant(resolver, "", "")

	transcript := assistant.Transcript()
	transcript[0].Content = "mutated"

	if assistant.Transcript()[0].Content == "mutated" {
		t.Error("mutating the returned transcript changed the assistant's state")
	}
}

func TestProviderErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ProviderError{Provider: "openai", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is() does not see the wrapped cause")
	}
	if got := err.Error(); got != "openai provider: boom" {
		t.Errorf("Error() = %q", got)
	}
}
