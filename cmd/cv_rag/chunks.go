package main

import (
	"cv_rag/internal/app"
	"cv_rag/internal/chunker"
	"cv_rag/internal/document"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var chunksCmd = &cobra.Command{
	Use:   "chunks",
	Short: "Print the chunks extracted from the CVs",
	RunE:  runChunks,
}

func init() {
	addCVFlag(chunksCmd)
	rootCmd.AddCommand(chunksCmd)
}

// runChunks не строит индекс и не ходит к провайдерам
func runChunks(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	splitter, err := chunker.NewFactory(log.Named("splitter")).Get(cfg.SectionStrategy)
	if err != nil {
		return err
	}

	files, err := app.LoadFiles(cvPaths)
	if err != nil {
		return err
	}

	a := app.New(cfg, log, app.Deps{
		Extractor: document.NewPDFExtractor(log.Named("pdf")),
		Splitter:  splitter,
	})

	var chunks []chunker.Chunk
	for _, cv := range a.Ingest(cmd.Context(), files) {
		chunks = append(chunks, chunker.BuildChunks(cv.Raw, cv.Sections)...)
	}

	log.Info("chunks built", zap.Int("cvs", len(files)), zap.Int("chunks", len(chunks)))
	app.PrintChunks(cmd.OutOrStdout(), chunks)
	return nil
}
