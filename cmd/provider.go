package cmd

import (
	"github.com/zeekyhq/zeeky/internal/anthropic"
	"github.com/zeekyhq/zeeky/internal/openai"
	"github.com/zeekyhq/zeeky/internal/zeeky"
	"github.com/zeekyhq/zeeky/internal/zeeky/config"
)

// newResolver wires the provider dispatch table from configuration.
// Models prefixed with "claude" or "anthropic" go to Anthropic; everything
// else falls back to OpenAI.
func newResolver(cfg *config.Config) *zeeky.Resolver {
	return zeeky.NewResolver(
		openai.ProviderName,
		openai.NewProvider(cfg),
		zeeky.DispatchRule{
			Name:     anthropic.ProviderName,
			Prefixes: anthropic.ModelPrefixes,
			Provider: anthropic.NewProvider(cfg),
		},
	)
}
