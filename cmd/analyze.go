package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-analyzer/internal/analyzer"
	"github.com/spigell/resume-analyzer/internal/classify"
	"github.com/spigell/resume-analyzer/internal/document"
	"github.com/spigell/resume-analyzer/internal/store"
)

const (
	PromptAll    = "All of them"
	OutputJSON   = "json"
	OutputYAML   = "yaml"
	pdfExtension = ".pdf"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Analyze résumé PDFs and print the extracted profiles",
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntP("jobs", "p", 0, "documents analyzed in parallel (default from config, 4)")
	analyzeCmd.Flags().StringP("output", "o", "", "output format: json or yaml (default json)")
	analyzeCmd.Flags().String("dir", "", "directory to pick documents from when no files are given")
	analyzeCmd.Flags().Bool("save", false, "store the results in the local database")
	analyzeCmd.Flags().Bool("text", false, "include the extracted text in the output")

	viper.BindPFlag("analyze.jobs", analyzeCmd.Flags().Lookup("jobs"))
	viper.BindPFlag("analyze.output", analyzeCmd.Flags().Lookup("output"))
	viper.BindPFlag("analyze.dir", analyzeCmd.Flags().Lookup("dir"))
}

// outcome is the result of one document; exactly one of result and err is set.
type outcome struct {
	path   string
	result *analyzer.Result
	err    error
}

func analyze(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	logger, config := setup()

	output := strings.ToLower(strings.TrimSpace(config.Analyze.Output))
	if output != OutputJSON && output != OutputYAML {
		logger.Fatal("unsupported output format", zap.String("output", config.Analyze.Output))
	}

	files := args
	if len(files) == 0 {
		picked, err := pickFiles(config.Analyze.Dir)
		if err != nil {
			logger.Fatal("choosing documents", zap.Error(err))
		}
		files = picked
	}

	pipeline, err := newAnalyzer(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the pipeline", zap.Error(err))
	}

	outcomes, err := analyzeFiles(ctx, pipeline, files, config.Analyze.Jobs)
	if err != nil {
		logger.Fatal("analyzing documents", zap.Error(err))
	}

	withText, _ := cmd.Flags().GetBool("text")
	results := make([]*analyzer.Result, 0, len(outcomes))
	failed := 0
	for _, o := range outcomes {
		if o.err != nil {
			failed++
			logger.Error("document skipped", zap.String("document", o.path), zap.Error(o.err))
			continue
		}
		if !withText {
			o.result.Profile.RawText = ""
		}
		logTips(logger, o.result)
		results = append(results, o.result)
	}

	if save, _ := cmd.Flags().GetBool("save"); save && len(results) > 0 {
		if err := saveResults(ctx, config.Store.Path, results, logger); err != nil {
			logger.Fatal("saving results", zap.Error(err))
		}
	}

	if err := printResults(os.Stdout, output, results); err != nil {
		logger.Fatal("printing results", zap.Error(err))
	}

	if failed > 0 {
		logger.Fatal("some documents could not be analyzed", zap.Int("failed", failed), zap.Int("analyzed", len(results)))
	}
}

// analyzeFiles runs the pipeline over files with at most jobs documents in
// flight. Unreadable documents become failed outcomes; a file that cannot be
// read at all aborts the whole run.
func analyzeFiles(ctx context.Context, pipeline *analyzer.Analyzer, files []string, jobs int) ([]outcome, error) {
	outcomes := make([]outcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, jobs))

	for i, path := range files {
		g.Go(func() error {
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			result, err := pipeline.Analyze(gctx, filepath.Base(path), raw)
			if err != nil && !errors.Is(err, document.ErrUnreadable) {
				return fmt.Errorf("analyzing %s: %w", path, err)
			}

			outcomes[i] = outcome{path: path, result: result, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

// pickFiles lists the PDFs in dir and asks which of them to analyze.
func pickFiles(dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), pdfExtension) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files in %s", pdfExtension, dir)
	}

	prompt := promptui.Select{
		Label: "Choose a résumé and press ENTER",
		Items: append(append([]string{}, files...), PromptAll),
	}

	_, selected, err := prompt.Run()
	if err != nil {
		return nil, err
	}

	if selected == PromptAll {
		return files, nil
	}
	return []string{selected}, nil
}

func logTips(logger *zap.Logger, result *analyzer.Result) {
	for _, section := range result.Score.MissingSections {
		logger.Info("resume tip",
			zap.String("document", result.Source),
			zap.String("section", string(section)),
			zap.String("tip", classify.Hint(section)),
		)
	}
}

func saveResults(ctx context.Context, path string, results []*analyzer.Result, logger *zap.Logger) error {
	s, err := store.Open(path, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, result := range results {
		rec, err := s.Save(ctx, store.RecordFromResult(result))
		if err != nil {
			return err
		}
		logger.Info("analysis stored", zap.String("id", rec.ID.String()), zap.String("document", result.Source))
	}
	return nil
}

// printResults writes a single result as an object and several as a list.
func printResults(w io.Writer, output string, results []*analyzer.Result) error {
	var v any = results
	if len(results) == 1 {
		v = results[0]
	}

	switch output {
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
