// Package prompt loads TOML persona files for the assistant.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Prompt represents the structure of a TOML persona file.
type Prompt struct {
	System string  `toml:"system"`
	Model  *string `toml:"model,omitempty"` // Optional: overrides the configured model
}

// LoadPrompt loads a persona file and returns its contents.
func LoadPrompt(filePath string) (*Prompt, error) {
	var prompt Prompt
	if _, err := toml.DecodeFile(filePath, &prompt); err != nil {
		return nil, fmt.Errorf("error decoding prompt file: %v", err)
	}
	return &prompt, nil
}

// Find locates a persona file by name across the prompt directories and
// loads it. The ".toml" extension is optional. Later directories take
// precedence over earlier ones.
func Find(name string, promptDirs []string) (*Prompt, error) {
	promptFile := name
	if !strings.HasSuffix(promptFile, ".toml") {
		promptFile = promptFile + ".toml"
	}

	var promptPath string
	var found bool
	for _, promptDir := range promptDirs {
		candidatePath := filepath.Join(promptDir, promptFile)
		if _, err := os.Stat(candidatePath); err == nil {
			promptPath = candidatePath
			found = true
			// Keep searching so later directories win
		}
	}

	if !found {
		return nil, fmt.Errorf("prompt file '%s' not found in any of the prompt directories: %v", promptFile, promptDirs)
	}

	return LoadPrompt(promptPath)
}
