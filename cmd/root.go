package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zeekyhq/zeeky/internal/zeeky/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zeeky",
	Short: "Zeeky - an all-in-one AI assistant",
	Long: `Zeeky is a conversational AI assistant that talks to multiple LLM
providers. Model names starting with "claude" or "anthropic" are routed to
Anthropic; everything else goes to OpenAI.

Use 'zeeky chat' for an interactive conversation or 'zeeky serve' to expose
the assistant over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/zeeky/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Load a .env file if present so token references can resolve.
	_ = godotenv.Load()

	viper.SetEnvPrefix("ZEEKY")
	viper.AutomaticEnv()

	// Determine config directory for user config
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	userConfigDir := filepath.Join(home, ".config", "zeeky")

	defaultConfig := config.NewDefaultConfig(filepath.Join(userConfigDir, "prompts"))

	viper.SetDefault("model", defaultConfig.Model)
	viper.SetDefault("system_prompt", defaultConfig.SystemPrompt)
	viper.SetDefault("openai_base_url", defaultConfig.OpenAIBaseURL)
	viper.SetDefault("openai_token", defaultConfig.OpenAIToken)
	viper.SetDefault("anthropic_base_url", defaultConfig.AnthropicBaseURL)
	viper.SetDefault("anthropic_token", defaultConfig.AnthropicToken)
	viper.SetDefault("prompt_dirs", defaultConfig.PromptDirs)
	viper.SetDefault("listen_addr", defaultConfig.ListenAddr)

	// Bind environment variables
	viper.BindEnv("model", "ZEEKY_MODEL")
	viper.BindEnv("system_prompt", "ZEEKY_SYSTEM_PROMPT")
	viper.BindEnv("openai_base_url", "ZEEKY_OPENAI_BASE_URL")
	viper.BindEnv("anthropic_base_url", "ZEEKY_ANTHROPIC_BASE_URL")
	viper.BindEnv("listen_addr", "ZEEKY_LISTEN_ADDR")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(userConfigDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, "Model:", viper.GetString("model"))
	}
}
