package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stake-plus/portfolio-chat/src/api"
	"github.com/stake-plus/portfolio-chat/src/api/config"
	"github.com/stake-plus/portfolio-chat/src/api/data"
	"github.com/stake-plus/portfolio-chat/src/intent"
	"github.com/stake-plus/portfolio-chat/src/logging"
	"github.com/stake-plus/portfolio-chat/src/tools"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "portfolio-chat",
		Short:        "Portfolio chat assistant backend",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newRouteCmd(), newToolsCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP chat server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.New(os.Stderr, os.Getenv("LOG_LEVEL"))

			if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
				db, err := data.ConnectMySQL(dsn)
				if err != nil {
					return fmt.Errorf("mysql: %w", err)
				}
				if err := data.LoadSettings(db); err != nil {
					return fmt.Errorf("load settings: %w", err)
				}
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
				logger.Info("settings loaded from database")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger = logging.New(os.Stderr, cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return api.Run(ctx, cfg, logger)
		},
	}
}

func newRouteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route <message>",
		Short: "Show which tool a message would be answered by",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if name, ok := intent.Default().Classify(text); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "tool: %s\n", name)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "model")
			return nil
		},
	}
}

func newToolsCmd() *cobra.Command {
	var contentFile string
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the canned tools and their descriptions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			content, err := tools.LoadContent(contentFile)
			if err != nil {
				return err
			}
			registry, err := tools.NewBuiltinRegistry(content)
			if err != nil {
				return err
			}
			for _, name := range registry.Names() {
				d, _ := registry.Get(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", name, d.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&contentFile, "content", os.Getenv("TOOLS_FILE"), "YAML file overriding tool content")
	return cmd
}
