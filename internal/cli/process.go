package cli

import (
	"context"
	"fmt"

	"recruitflow/internal/common"
	"recruitflow/internal/recruiting"
	"recruitflow/internal/types"

	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process [job-description-file] [resume-file...]",
	Short: "Run candidate resumes through the full recruitment pipeline",
	Long: `Run one or more candidate resumes through the recruitment pipeline.
The first argument is the job description file; the remaining arguments are
resume files (PDF or plain text). Candidates scoring at or above the minimum
score get an interview slot and an invitation email.`,
	Args: cobra.MinimumNArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if processConfig.OutputFormat == "" {
			processConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(processConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runProcess,
}

var processConfig common.CommandConfig
var processMinScore float64

func init() {
	processCmd.Flags().StringVarP(&processConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	processCmd.Flags().StringVar(&processConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	processCmd.Flags().Float64Var(&processMinScore, "min-score", 0, "Minimum screening score for selection (overrides config)")

	// Add completion for format flag
	_ = processCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	if cmd.Flags().Changed("min-score") {
		cfg.Pipeline.MinScore = processMinScore
	}

	pipeline, err := recruiting.NewPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create recruitment pipeline: %w", err)
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logger.Warn("Failed to close pipeline", "error", err)
		}
	}()

	run := func(ctx context.Context, resumePaths []string, jobDescription string) (types.PipelineResult, error) {
		return pipeline.ProcessCandidates(ctx, resumePaths, jobDescription), nil
	}

	err = common.RunWorkflowCommand(
		cmd.Context(),
		logger,
		processConfig,
		args[0],
		args[1:],
		run,
	)
	if err != nil {
		return fmt.Errorf("failed to process candidates: %w", err)
	}
	logger.Info("Candidate processing completed successfully")
	return nil
}
