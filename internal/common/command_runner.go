package common

import (
	"context"

	"recruitflow/internal/errors"
)

// WorkflowFunc is the signature of a recruitment workflow invocation:
// it receives resume file paths plus the job description text and
// produces a formattable result.
type WorkflowFunc[Output any] func(ctx context.Context, resumePaths []string, jobDescription string) (Output, error)

// RunWorkflowCommand encapsulates the common logic for CLI commands
// that read a job description file, run a workflow over resume files
// and write the formatted result.
func RunWorkflowCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	jobDescriptionFile string,
	resumePaths []string,
	run WorkflowFunc[Output],
) error {
	fileProcessor := NewFileProcessor(logger)
	outputHandler := NewOutputHandler(logger)

	contents, err := fileProcessor.ValidateAndReadFiles(jobDescriptionFile)
	if err != nil {
		return err
	}
	jobDescription := contents[0]

	logger.Info("Running recruitment workflow",
		"resumes", len(resumePaths),
		"job_description", jobDescriptionFile)

	result, err := run(ctx, resumePaths, jobDescription)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
