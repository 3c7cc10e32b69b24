package zeeky

// Assistant owns one conversation transcript and the model identifier that
// drives it. The transcript always starts with a system message and is only
// ever appended to. An Assistant is not safe for concurrent use; callers that
// share one across goroutines must serialize Chat calls themselves.
type Assistant struct {
	model    string
	resolver *Resolver
	messages []Message
}

// NewAssistant creates an assistant backed by the given provider resolver.
// Empty model or systemPrompt select the package defaults.
func NewAssistant(resolver *Resolver, model, systemPrompt string) *Assistant {
	if model == "" {
		model = DefaultModel
	}
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &Assistant{
		model:    model,
		resolver: resolver,
		messages: []Message{{Role: RoleSystem, Content: systemPrompt}},
	}
}

// Chat appends the user input to the transcript, sends the whole transcript
// to the provider selected for the stored model, appends the reply as an
// assistant message, and returns it. The input is passed through verbatim.
//
// On failure the transcript keeps the appended user message but gains no
// assistant entry, and the error propagates unchanged: no retry, no fallback
// provider.
func (a *Assistant) Chat(userInput string) (string, error) {
	a.messages = append(a.messages, Message{Role: RoleUser, Content: userInput})

	reply, err := a.resolver.Resolve(a.model).Send(a.messages, a.model)
	if err != nil {
		return "", err
	}

	a.messages = append(a.messages, Message{Role: RoleAssistant, Content: reply})
	return reply, nil
}

// Model returns the model identifier the assistant dispatches on.
func (a *Assistant) Model() string {
	return a.model
}

// Transcript returns a copy of the conversation so far.
func (a *Assistant) Transcript() []Message {
	out := make([]Message, len(a.messages))
	copy(out, a.messages)
	return out
}
