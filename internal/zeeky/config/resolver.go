package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// expandEnvVar expands environment variable references in the given value.
// Supports both $VAR and ${VAR} syntax. If the environment variable is not
// set, returns an empty string. The lookup happens at call time, so tokens
// exported after config load are still picked up.
func expandEnvVar(value string) string {
	if !strings.HasPrefix(value, "$") {
		// Not an environment variable reference, return as-is
		return value
	}

	var envVarName string
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVarName = value[2 : len(value)-1]
	} else {
		envVarName = strings.TrimPrefix(value, "$")
	}

	return os.Getenv(envVarName)
}

// GetBaseURL returns the base URL for the specified provider.
func (c *Config) GetBaseURL(provider string) (string, error) {
	var baseURLValue string
	switch provider {
	case "openai":
		baseURLValue = c.OpenAIBaseURL
	case "anthropic":
		baseURLValue = c.AnthropicBaseURL
	default:
		return "", fmt.Errorf("unsupported provider: %s", provider)
	}

	if baseURLValue == "" {
		return "", fmt.Errorf("%s base URL is not configured. Set it in config file (%s_base_url) or environment variable (ZEEKY_%s_BASE_URL)", provider, provider, strings.ToUpper(provider))
	}

	return baseURLValue, nil
}

// GetToken returns the API token for the specified provider, expanding
// environment variable references at call time.
func (c *Config) GetToken(provider string) (string, error) {
	var tokenValue string
	var envVar string
	switch provider {
	case "openai":
		tokenValue = c.OpenAIToken
		envVar = "OPENAI_API_KEY"
	case "anthropic":
		tokenValue = c.AnthropicToken
		envVar = "ANTHROPIC_API_KEY"
	default:
		return "", fmt.Errorf("unsupported provider: %s", provider)
	}

	tokenValue = expandEnvVar(tokenValue)
	if tokenValue == "" {
		return "", fmt.Errorf("%s token is not configured. Set the %s environment variable or %s_token in the config file", provider, envVar, provider)
	}

	return tokenValue, nil
}

// ResolvePath converts a relative path to absolute path if needed.
// Relative paths are resolved against the config file directory, or the
// current working directory when no config file is in use.
func ResolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("error getting current working directory: %v", err)
		}
		return filepath.Join(cwd, path), nil
	}

	configDir := filepath.Dir(configFile)
	if !filepath.IsAbs(configDir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("error getting current working directory: %v", err)
		}
		configDir = filepath.Join(cwd, configDir)
	}

	return filepath.Join(configDir, path), nil
}
