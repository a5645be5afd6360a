package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/report"
	"github.com/spigell/resume-analyzer/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export stored analyses as CSV or XLSX",
	Run: func(cmd *cobra.Command, _ []string) {
		exportReport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringP("format", "f", string(report.CSV), "report format: csv or xlsx")
	reportCmd.Flags().StringP("out", "o", "", "output file (default is stdout)")
}

func exportReport(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		logger.Fatal("choosing report format", zap.Error(err))
	}

	s, err := store.Open(config.Store.Path, logger)
	if err != nil {
		logger.Fatal("opening the store", zap.Error(err))
	}
	defer s.Close()

	records, err := s.List(ctx)
	if err != nil {
		logger.Fatal("listing analyses", zap.Error(err))
	}

	var w io.Writer = os.Stdout
	out, _ := cmd.Flags().GetString("out")
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			logger.Fatal("creating report file", zap.Error(err))
		}
		defer f.Close()
		w = f
	}

	if err := report.Write(w, format, records); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}

	logger.Info("report written",
		zap.String("format", string(format)),
		zap.String("out", out),
		zap.Int("rows", len(records)),
	)
}
