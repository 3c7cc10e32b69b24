package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zeekyhq/zeeky/internal/zeeky"
	"github.com/zeekyhq/zeeky/internal/zeeky/config"
	promptpkg "github.com/zeekyhq/zeeky/internal/zeeky/prompt"
)

var (
	model      string
	promptName string
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat with Zeeky",
	Long: `Start an interactive multi-turn conversation with Zeeky.

Type 'exit' or 'quit' to leave. The conversation transcript is kept in memory
for the duration of the session and sent in full on every turn.

The model can be set with --model, the ZEEKY_MODEL environment variable, or
the config file. A persona file selected with --prompt overrides the default
system prompt; the file is TOML with a 'system' key and an optional 'model'
key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		systemPrompt := cfg.SystemPrompt

		if promptName != "" {
			persona, err := promptpkg.Find(promptName, cfg.PromptDirs)
			if err != nil {
				return fmt.Errorf("loading prompt: %w", err)
			}
			systemPrompt = persona.System
			if persona.Model != nil {
				cfg.Model = *persona.Model
			}
		}

		// Flag takes precedence over prompt file, env, and config.
		if cmd.Flags().Changed("model") {
			cfg.Model = model
		}

		resolver := newResolver(cfg)

		// The credential for the selected provider must be present before
		// the loop starts; absence is a startup failure, not a per-message
		// failure.
		providerName := resolver.ResolveName(cfg.Model)
		if _, err := cfg.GetToken(providerName); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}

		assistant := zeeky.NewAssistant(resolver, cfg.Model, systemPrompt)

		if verbose {
			fmt.Fprintf(os.Stderr, "Model: %s\n", assistant.Model())
			fmt.Fprintf(os.Stderr, "Provider: %s\n", providerName)
		}

		return runInteractiveShell(assistant)
	},
}

// runInteractiveShell reads lines from stdin, forwards them to the
// assistant, and prints replies. Provider failures are surfaced without
// ending the loop.
func runInteractiveShell(assistant *zeeky.Assistant) error {
	fmt.Fprintf(os.Stderr, "Welcome to Zeeky! Type 'exit' or 'quit' to leave.\n\n")

	// Interrupt ends the session cleanly rather than propagating an error
	// code.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nGoodbye!")
		os.Exit(0)
	}()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprint(os.Stderr, "You> ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
			// Clean EOF
			fmt.Fprintln(os.Stderr, "\nGoodbye!")
			return nil
		}

		input := scanner.Text()

		switch strings.ToLower(strings.TrimSpace(input)) {
		case "exit", "quit":
			fmt.Fprintln(os.Stderr, "Goodbye!")
			return nil
		}

		// The line goes through verbatim; the assistant accepts any string.
		reply, err := assistant.Chat(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		fmt.Printf("Zeeky> %s\n\n", reply)
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVarP(&model, "model", "m", "", "model name (default: env ZEEKY_MODEL or config)")
	chatCmd.Flags().StringVarP(&promptName, "prompt", "p", "", "persona file name from the prompt directories")
}
