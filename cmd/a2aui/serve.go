// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package a2aui

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/a2anet/a2a-ui/chat"
	"github.com/a2anet/a2a-ui/client"
	"github.com/a2anet/a2a-ui/config"
	"github.com/a2anet/a2a-ui/server"
	"github.com/a2anet/a2a-ui/telemetry"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web chat server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		logger := telemetry.SetupLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)

		var clientOpts []client.Option
		if len(cfg.Headers) > 0 {
			clientOpts = append(clientOpts, client.WithInterceptors(client.HeaderInterceptor(cfg.Headers)))
		}
		if cfg.AuthToken != "" {
			clientOpts = append(clientOpts, client.WithHeaderProvider(client.NewBearerToken(cfg.AuthToken)))
		}

		manager := chat.NewManager(chat.NewStore(), chat.NewSelection(), chat.NewAgentRegistry(),
			chat.WithLogger(logger),
			chat.WithClientOptions(clientOpts...),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		for _, url := range cfg.AgentURLs {
			if _, err := manager.RegisterAgent(ctx, url); err != nil {
				logger.Warn("skipping unreachable agent", "url", url, "error", err)
			}
		}

		srv := server.New(server.Config{
			Addr:    cfg.Addr,
			Manager: manager,
			Logger:  logger,
		})
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides A2AUI_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
