package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeekyhq/zeeky/internal/server"
	"github.com/zeekyhq/zeeky/internal/zeeky"
	"github.com/zeekyhq/zeeky/internal/zeeky/config"
	"github.com/zeekyhq/zeeky/internal/zeeky/session"
)

var listenAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Zeeky HTTP API",
	Long: `Run the Zeeky HTTP API.

Endpoints:
  GET  /health  health check
  POST /chat    {"session_id": "...", "message": "..."}

Omitting session_id from a chat request creates a new session; the returned
session_id carries the conversation across subsequent requests. Sessions are
held in memory and are lost when the process exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if cmd.Flags().Changed("addr") {
			cfg.ListenAddr = listenAddr
		}

		resolver := newResolver(cfg)
		registry := session.NewRegistry(func() *zeeky.Assistant {
			return zeeky.NewAssistant(resolver, cfg.Model, cfg.SystemPrompt)
		})

		srv := server.New(cfg.ListenAddr, registry)
		return srv.ListenAndServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&listenAddr, "addr", "", `listen address (default ":8000")`)
}
