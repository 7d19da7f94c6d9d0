package main

import (
	"fmt"
	"os"

	"cv_rag/internal/config"
	"cv_rag/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "cv_rag"

var (
	envFile  string
	debug    bool
	jsonLogs bool
	cvPaths  []string

	rootCmd = &cobra.Command{
		Use:          appName,
		Short:        "cv_rag answers questions about CVs and ranks them against a job description",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "a .env file to load (default is .env in current directory, if present)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLogs, "json", "j", false, "json format for logging")
}

// addCVFlag регистрирует обязательный --cv для команд, работающих с CV
func addCVFlag(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&cvPaths, "cv", nil, "path to a CV in PDF (repeatable)")
	_ = cmd.MarkFlagRequired("cv")
}

// setup загружает .env, создаёт логгер и читает конфиг
func setup() (*config.Config, *zap.Logger, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, nil, fmt.Errorf("load env file: %w", err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	log, err := logger.New(jsonLogs, debug)
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}

	cfg := config.Config{}
	if err := config.Init(&cfg); err != nil {
		log.Error("failed to load config", zap.Error(err))
		return nil, nil, err
	}

	return &cfg, log, nil
}
