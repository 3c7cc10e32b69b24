// Package config loads and resolves the Zeeky configuration from viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the configuration for the assistant and its providers.
type Config struct {
	Model            string   `toml:"model" mapstructure:"model"`
	SystemPrompt     string   `toml:"system_prompt" mapstructure:"system_prompt"`
	OpenAIBaseURL    string   `toml:"openai_base_url" mapstructure:"openai_base_url"`
	OpenAIToken      string   `toml:"openai_token" mapstructure:"openai_token"`
	AnthropicBaseURL string   `toml:"anthropic_base_url" mapstructure:"anthropic_base_url"`
	AnthropicToken   string   `toml:"anthropic_token" mapstructure:"anthropic_token"`
	PromptDirs       []string `toml:"prompt_dirs" mapstructure:"prompt_dirs"`
	ListenAddr       string   `toml:"listen_addr" mapstructure:"listen_addr"`
}

// NewDefaultConfig returns a new Config with default values.
// Tokens default to environment variable references so credentials never
// have to live in the config file.
func NewDefaultConfig(promptDir string) *Config {
	return &Config{
		Model:            "gpt-4o-mini",
		SystemPrompt:     "",
		OpenAIBaseURL:    "https://api.openai.com/v1",
		OpenAIToken:      "$OPENAI_API_KEY",
		AnthropicBaseURL: "https://api.anthropic.com/v1",
		AnthropicToken:   "$ANTHROPIC_API_KEY",
		PromptDirs:       []string{promptDir},
		ListenAddr:       ":8000",
	}
}

// LoadConfig loads configuration from viper.
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	// Convert prompt directories to absolute paths
	for i, promptDir := range config.PromptDirs {
		absPath, err := ResolvePath(promptDir)
		if err != nil {
			return nil, fmt.Errorf("error resolving prompt directory path '%s': %v", promptDir, err)
		}
		config.PromptDirs[i] = absPath
	}

	return config, nil
}
