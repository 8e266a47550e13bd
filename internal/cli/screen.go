package cli

import (
	"context"
	"fmt"

	"recruitflow/internal/common"
	"recruitflow/internal/recruiting"
	"recruitflow/internal/types"

	"github.com/spf13/cobra"
)

var screenCmd = &cobra.Command{
	Use:   "screen [job-description-file] [resume-file]",
	Short: "Screen a single resume against a job description",
	Long: `Screen a single candidate resume against a job description without
scheduling or email stages. Prints the candidate's name, email, score and
screening feedback.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if screenConfig.OutputFormat == "" {
			screenConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(screenConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScreen,
}

var screenConfig common.CommandConfig

func init() {
	screenCmd.Flags().StringVarP(&screenConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	screenCmd.Flags().StringVar(&screenConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = screenCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScreen(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	pipeline, err := recruiting.NewPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create recruitment pipeline: %w", err)
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logger.Warn("Failed to close pipeline", "error", err)
		}
	}()

	run := func(ctx context.Context, resumePaths []string, jobDescription string) (types.ScreeningResult, error) {
		result, err := pipeline.ScreenOne(ctx, resumePaths[0], jobDescription)
		if err != nil {
			return types.ScreeningResult{}, err
		}
		return *result, nil
	}

	err = common.RunWorkflowCommand(
		cmd.Context(),
		logger,
		screenConfig,
		args[0],
		args[1:],
		run,
	)
	if err != nil {
		return fmt.Errorf("failed to screen resume: %w", err)
	}
	logger.Info("Resume screening completed successfully")
	return nil
}
