package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"cv_rag/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	jobPath    string
	outputPath string

	scoreCmd = &cobra.Command{
		Use:   "score",
		Short: "Score the CVs against a job description and print the ranking",
		RunE:  runScore,
	}
)

func init() {
	addCVFlag(scoreCmd)
	scoreCmd.Flags().StringVar(&jobPath, "job", "", "path to a plain-text job description")
	scoreCmd.Flags().StringVarP(&outputPath, "output", "o", "", "save the report to a file (.md or .html)")
	_ = scoreCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	job, err := os.ReadFile(jobPath)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	files, err := app.LoadFiles(cvPaths)
	if err != nil {
		return err
	}

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Error("failed to create app", zap.Error(err))
		return err
	}

	report, err := a.Score(ctx, a.Ingest(ctx, files), string(job))
	if err != nil {
		log.Error("scoring failed", zap.Error(err))
		return err
	}

	if err := printRanking(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if outputPath != "" {
		if err := report.WriteFile(outputPath); err != nil {
			return err
		}
		log.Info("report saved", zap.String("path", outputPath))
	}

	return nil
}

func printRanking(out io.Writer, report *app.ScoreReport) error {
	reqs := report.Extraction.Requirements
	fmt.Fprintf(out, "Skills: %v\nRelated projects: %v\n\n", reqs.Skills, reqs.ProjectsRelated)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tAPPLICANT\tFILE\tSKILLS\tPROJECTS\tTOTAL")
	for i, s := range report.Ranked {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.1f/5\t%.1f/5\t%.1f/10\n", i+1, s.ApplicantName, s.FileName, s.SkillsScore, s.ProjectsScore, s.TotalScore)
	}
	return w.Flush()
}
