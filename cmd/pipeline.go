package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/analyzer"
	"github.com/spigell/resume-analyzer/internal/contact"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/names"
	"github.com/spigell/resume-analyzer/internal/ner"
)

// setup creates the logger and reads the configuration. It exits on failure.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-analyzer", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return logger, config
}

func redacted(config *Config) *Config {
	copied := *config
	if config.NER.Gemini != nil && config.NER.Gemini.APIKey != "" {
		gemini := *config.NER.Gemini
		gemini.APIKey = "***"
		copied.NER.Gemini = &gemini
	}
	return &copied
}

// newAnalyzer wires the recognizer, the name resolver and the extractors.
func newAnalyzer(ctx context.Context, config *Config, log *zap.Logger) (*analyzer.Analyzer, error) {
	annotator, err := ner.New(ctx, config.NER, log)
	if err != nil {
		return nil, fmt.Errorf("building recognizer: %w", err)
	}

	resolverLogger := logger.WithRecognizerFields(log, config.NER.Provider, "")

	return analyzer.New(
		names.NewResolver(annotator, resolverLogger),
		analyzer.Config{
			PhoneRegion: config.Phone.Region,
			Skills:      contact.Vocabulary(config.Vocabulary.ExtraSkills...),
		},
		log,
	), nil
}
