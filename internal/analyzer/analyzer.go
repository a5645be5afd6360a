// Package analyzer turns a raw résumé into a structured profile, a domain
// prediction and a section score.
package analyzer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/classify"
	"github.com/spigell/resume-analyzer/internal/contact"
	"github.com/spigell/resume-analyzer/internal/document"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/names"
)

// Profile holds the facts recovered from one document. Email and Phone are
// empty when not found.
type Profile struct {
	Name       string       `json:"name" yaml:"name"`
	NameSource names.Source `json:"name_source,omitempty" yaml:"name_source,omitempty"`
	Email      string       `json:"email" yaml:"email"`
	Phone      string       `json:"phone" yaml:"phone"`
	Skills     []string     `json:"skills" yaml:"skills"`
	PageCount  int          `json:"page_count" yaml:"page_count"`
	RawText    string       `json:"raw_text,omitempty" yaml:"raw_text,omitempty"`
}

// Result is everything produced for one document.
type Result struct {
	Source     string               `json:"source,omitempty" yaml:"source,omitempty"`
	Profile    Profile              `json:"profile" yaml:"profile"`
	Prediction classify.Prediction  `json:"prediction" yaml:"prediction"`
	Score      classify.ScoreReport `json:"score" yaml:"score"`
}

// Config tunes the extractors.
type Config struct {
	// PhoneRegion is the region assumed for numbers without a country code.
	PhoneRegion string
	// Skills is the vocabulary matched against the text. Empty means
	// contact.DefaultSkills.
	Skills []string
}

// Analyzer runs the pipeline. It keeps no per-document state and may be
// shared by concurrent callers.
type Analyzer struct {
	resolver *names.Resolver
	config   Config
	logger   *zap.Logger
}

// New creates an Analyzer.
func New(resolver *names.Resolver, config Config, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}

	if resolver == nil {
		resolver = names.NewResolver(nil, logger)
	}

	if config.PhoneRegion == "" {
		config.PhoneRegion = contact.DefaultRegion
	}

	if len(config.Skills) == 0 {
		config.Skills = contact.DefaultSkills
	}

	return &Analyzer{resolver: resolver, config: config, logger: logger}
}

// Analyze opens raw and runs the pipeline over it. source only labels the
// result and the log entry. Unparseable input yields document.ErrUnreadable.
func (a *Analyzer) Analyze(ctx context.Context, source string, raw []byte) (*Result, error) {
	doc, err := document.Open(raw)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	result, err := a.AnalyzeDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	result.Source = source

	a.logger.Info("analyzed document",
		append(logger.StringFields(logger.StringField{Key: logger.FieldDocument, Value: source}),
			zap.Int("pages", result.Profile.PageCount),
			zap.String("name_source", string(result.Profile.NameSource)),
			zap.String("domain", string(result.Prediction.Domain)),
			zap.String("tier", string(result.Prediction.ExperienceTier)),
			zap.Int("score", result.Score.Total),
			zap.Int("skills", len(result.Profile.Skills)),
		)...,
	)

	return result, nil
}

// AnalyzeDocument runs the pipeline over an already opened document. The
// caller keeps ownership of doc.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, doc document.Document) (*Result, error) {
	text, pages, err := document.ExtractText(doc)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	profile := Profile{
		Name:      names.NotFound,
		Email:     contact.Email(text),
		Phone:     contact.Phone(text, a.config.PhoneRegion),
		Skills:    contact.SkillsFrom(text, a.config.Skills),
		PageCount: pages,
		RawText:   text,
	}

	if c, ok := a.resolver.ResolveCandidate(ctx, doc); ok {
		profile.Name = c.Value
		profile.NameSource = c.Source
	}

	return &Result{
		Profile:    profile,
		Prediction: classify.Predict(text, pages),
		Score:      classify.Score(text),
	}, nil
}
