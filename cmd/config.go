package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zeekyhq/zeeky/internal/zeeky/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Display current configuration",
	Long: `Display the current configuration values.
This command shows all configuration values loaded from the config file and environment variables.

If a field name is specified, only that field's value is displayed.
Available fields: configfile, model, system_prompt, openai_base_url, openai_token, anthropic_base_url, anthropic_token, promptdirs, listen_addr`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if len(args) > 0 {
			field := strings.ToLower(args[0])
			switch field {
			case "configfile":
				fmt.Println(viper.ConfigFileUsed())
			case "model":
				fmt.Println(cfg.Model)
			case "system_prompt", "systemprompt":
				fmt.Println(cfg.SystemPrompt)
			case "openai_base_url", "openaibaseurl":
				fmt.Println(cfg.OpenAIBaseURL)
			case "openai_token", "openaitoken":
				fmt.Println(maskToken(cfg.OpenAIToken))
			case "anthropic_base_url", "anthropicbaseurl":
				fmt.Println(cfg.AnthropicBaseURL)
			case "anthropic_token", "anthropictoken":
				fmt.Println(maskToken(cfg.AnthropicToken))
			case "promptdirs":
				fmt.Println(strings.Join(cfg.PromptDirs, ","))
			case "listen_addr", "listenaddr":
				fmt.Println(cfg.ListenAddr)
			default:
				fmt.Fprintf(os.Stderr, "Unknown field: %s\n", args[0])
				fmt.Fprintf(os.Stderr, "Available fields: configfile, model, system_prompt, openai_base_url, openai_token, anthropic_base_url, anthropic_token, promptdirs, listen_addr\n")
				os.Exit(1)
			}
			return
		}

		fmt.Printf("ConfigFile: %s\n", viper.ConfigFileUsed())
		fmt.Printf("Model: %s\n", cfg.Model)
		fmt.Printf("SystemPrompt: %s\n", cfg.SystemPrompt)
		fmt.Printf("OpenAIBaseURL: %s\n", cfg.OpenAIBaseURL)
		fmt.Printf("OpenAIToken: %s\n", maskToken(cfg.OpenAIToken))
		fmt.Printf("AnthropicBaseURL: %s\n", cfg.AnthropicBaseURL)
		fmt.Printf("AnthropicToken: %s\n", maskToken(cfg.AnthropicToken))
		fmt.Printf("PromptDirectories: %s\n", strings.Join(cfg.PromptDirs, ","))
		fmt.Printf("ListenAddr: %s\n", cfg.ListenAddr)
	},
}

// maskToken returns a masked version of the token for security.
// Environment variable references are shown as-is since they hold no secret.
func maskToken(token string) string {
	if strings.HasPrefix(token, "$") {
		return token
	}
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func init() {
	rootCmd.AddCommand(configCmd)
}
