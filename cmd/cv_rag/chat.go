package main

import (
	"os"
	"os/signal"
	"syscall"

	"cv_rag/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Index the CVs and answer questions about them interactively",
	RunE:  runChat,
}

func init() {
	addCVFlag(chatCmd)
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Error("failed to create app", zap.Error(err))
		return err
	}

	console := app.NewConsole(a, cvPaths, cmd.OutOrStdout())
	if _, err := console.Load(ctx); err != nil {
		log.Error("failed to load CVs", zap.Error(err))
		return err
	}

	return console.Run(ctx)
}
