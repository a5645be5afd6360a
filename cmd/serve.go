package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/server"
	"github.com/spigell/resume-analyzer/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis pipeline over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default :8080)")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, config := setup()

	pipeline, err := newAnalyzer(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the pipeline", zap.Error(err))
	}

	var saver server.Saver
	if config.Store.Path != "" {
		s, err := store.Open(config.Store.Path, logger)
		if err != nil {
			logger.Fatal("opening the store", zap.Error(err))
		}
		defer s.Close()
		saver = s
	}

	if err := server.New(pipeline, saver, logger).ListenAndServe(ctx, config.Server.Addr); err != nil {
		logger.Fatal("serving", zap.Error(err))
	}
}
