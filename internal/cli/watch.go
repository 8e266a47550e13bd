package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"recruitflow/internal/common"
	"recruitflow/internal/config"
	"recruitflow/internal/errors"
	"recruitflow/internal/recruiting"
	"recruitflow/internal/utils"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch an intake directory and process incoming resumes",
	Long: `Watch a directory for incoming resume files and run each batch through
the recruitment pipeline. New files are debounced so that a burst of uploads
is processed as a single batch. The job description is re-read from the
configured file before every batch.`,
	RunE: runWatch,
}

var watchConfig common.CommandConfig

func init() {
	watchCmd.Flags().StringVarP(&watchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	watchCmd.Flags().StringVar(&watchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	watchCmd.Flags().String("dir", "", "Directory to watch for incoming resumes (overrides config)")
	watchCmd.Flags().String("job-file", "", "Job description file (overrides config)")

	// Bind flags to viper config keys
	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, watchCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("watch.dir", "dir")
	bindFlag("watch.jobFile", "job-file")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	if watchConfig.OutputFormat == "" {
		watchConfig.OutputFormat = cfg.App.DefaultFormat
	}
	if err := common.ValidateOutputFormat(watchConfig.OutputFormat, cfg.App.SupportedFormats); err != nil {
		return err
	}
	if cfg.Watch.Dir == "" {
		return fmt.Errorf("no watch directory configured (set watch.dir or --dir)")
	}
	if cfg.Watch.JobFile == "" {
		return fmt.Errorf("no job description file configured (set watch.jobFile or --job-file)")
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

	w := &intakeWatcher{
		cfg:      cfg.Watch,
		pipeline: pipeline,
		logger:   logger,
		output:   common.NewOutputHandler(logger),
		pending:  make(map[string]struct{}),
	}
	return w.run(cmd.Context())
}

// intakeWatcher accumulates resume files from fsnotify events and
// processes them in debounced batches.
type intakeWatcher struct {
	cfg      config.WatchConfig
	pipeline *recruiting.Pipeline
	logger   *errors.Logger
	output   *common.OutputHandler
	pending  map[string]struct{}
}

func (w *intakeWatcher) run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create directory watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			w.logger.Warn("Failed to close directory watcher", "error", err)
		}
	}()

	if err := watcher.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", w.cfg.Dir, err)
	}

	w.logger.Info("Watching intake directory",
		"dir", w.cfg.Dir,
		"job_file", w.cfg.JobFile,
		"debounce", w.cfg.DebounceDelay)

	if w.cfg.ProcessOnStart {
		if err := w.enqueueExisting(); err != nil {
			return err
		}
	}

	debounce := time.NewTimer(w.cfg.DebounceDelay)
	if len(w.pending) == 0 {
		if !debounce.Stop() {
			<-debounce.C
		}
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping intake watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("directory watcher closed unexpectedly")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !utils.IsResumeFile(event.Name) {
				continue
			}
			w.logger.Debug("Resume file detected", "path", event.Name, "op", event.Op.String())
			w.pending[event.Name] = struct{}{}
			// Restart the quiet period on every event
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(w.cfg.DebounceDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("directory watcher closed unexpectedly")
			}
			w.logger.Warn("Directory watcher error", "error", err)

		case <-debounce.C:
			w.processBatch(ctx)
		}
	}
}

// enqueueExisting queues resume files already present in the intake
// directory and arms an immediate batch.
func (w *intakeWatcher) enqueueExisting() error {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		return fmt.Errorf("failed to read watch directory %s: %w", w.cfg.Dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.cfg.Dir, entry.Name())
		if utils.IsResumeFile(path) {
			w.pending[path] = struct{}{}
		}
	}
	if len(w.pending) > 0 {
		w.logger.Info("Queued existing resumes", "count", len(w.pending))
	}
	return nil
}

func (w *intakeWatcher) processBatch(ctx context.Context) {
	if len(w.pending) == 0 {
		return
	}

	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	w.pending = make(map[string]struct{})

	jobDescription, err := os.ReadFile(w.cfg.JobFile)
	if err != nil {
		w.logger.LogError(errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read job description file: %s", w.cfg.JobFile), err),
			"Skipping batch")
		return
	}

	w.logger.Info("Processing resume batch", "count", len(paths))
	result := w.pipeline.ProcessCandidates(ctx, paths, string(jobDescription))

	if err := w.output.HandleOutput(result, watchConfig); err != nil {
		w.logger.LogError(err, "Failed to write batch results")
	}
}
