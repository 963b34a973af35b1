package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"roomwire/internal/app"
	"roomwire/internal/client"
	"roomwire/internal/config"
	"roomwire/internal/log"
	"roomwire/internal/tui"
)

func main() {
	root := &cobra.Command{
		Use:           "roomwire",
		Short:         "Room-partitioned realtime chat",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newChatCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	var (
		addr       string
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat coordinator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.New(logLevel)

			cfg, path, err := config.Load(logger, configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			logger = log.New(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info().Str("addr", cfg.Addr).Str("config", path).Strs("rooms", cfg.Rooms).Msg("starting roomwire server")
			if err := app.New(cfg, logger).Run(ctx); err != nil {
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	return cmd
}

func newChatCmd() *cobra.Command {
	var (
		server   string
		username string
		room     string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Run the terminal chat client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.New(logLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			state := client.NewState(username, room)
			conn, err := client.Dial(ctx, server, state, logger)
			if err != nil {
				return err
			}
			go func() {
				if err := conn.Run(ctx); err != nil && ctx.Err() == nil {
					logger.Debug().Err(err).Msg("connection closed")
				}
			}()

			program := tea.NewProgram(tui.New(conn, state, username), tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:8080", "coordinator base URL")
	cmd.Flags().StringVar(&username, "user", "", "display name (prompted if empty)")
	cmd.Flags().StringVar(&room, "room", "blue", "room label")
	cmd.Flags().StringVar(&logLevel, "log-level", "error", "log level (debug, info, warn, error)")
	return cmd
}
