// Package names resolves the candidate's name from a document by running an
// ordered list of strategies until one produces an answer.
package names

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/document"
	"github.com/spigell/resume-analyzer/internal/ner"
)

// NotFound is returned when no strategy produced a name.
const NotFound = "Name not found"

// Source names the kind of evidence behind a candidate.
type Source string

const (
	SourceLayout  Source = "layout"
	SourcePattern Source = "pattern"
	SourceEntity  Source = "entity-recognition"
)

// Candidate is a proposed name and the evidence it came from.
type Candidate struct {
	Value  string `json:"value"`
	Source Source `json:"source"`
}

// Strategy is a single stage of name resolution. A strategy that has nothing
// to offer returns ok == false; errors are treated the same way by Resolver.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, in *Input) (c Candidate, ok bool, err error)
}

// Resolver interprets its strategies in order, first success wins.
type Resolver struct {
	steps  []Strategy
	logger *zap.Logger
}

// New creates a resolver over an explicit list of strategies.
func New(steps []Strategy, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{steps: steps, logger: logger}
}

// NewResolver creates a resolver with the default chain: font layout, then
// the page 1 header, then the whole document text.
func NewResolver(annotator ner.Annotator, logger *zap.Logger) *Resolver {
	return New(DefaultStrategies(annotator), logger)
}

// DefaultStrategies returns the default chain in evaluation order.
func DefaultStrategies(annotator ner.Annotator) []Strategy {
	return []Strategy{
		Font(),
		Header(annotator),
		FullText(annotator),
	}
}

// Resolve returns the best name found in doc, or NotFound. It never fails.
func (r *Resolver) Resolve(ctx context.Context, doc document.Document) string {
	c, ok := r.ResolveCandidate(ctx, doc)
	if !ok {
		return NotFound
	}
	return c.Value
}

// ResolveCandidate is Resolve with the winning candidate's provenance.
func (r *Resolver) ResolveCandidate(ctx context.Context, doc document.Document) (Candidate, bool) {
	if doc == nil {
		return Candidate{}, false
	}

	in := NewInput(doc)
	for _, step := range r.steps {
		if err := ctx.Err(); err != nil {
			r.logger.Debug("name resolution interrupted", zap.String("strategy", step.Name()), zap.Error(err))
			return Candidate{}, false
		}

		c, ok, err := runStep(ctx, step, in)
		switch {
		case err != nil:
			r.logger.Debug("name strategy", zap.String("strategy", step.Name()), zap.String("outcome", "error"), zap.Error(err))
		case !ok:
			r.logger.Debug("name strategy", zap.String("strategy", step.Name()), zap.String("outcome", "no answer"))
		default:
			r.logger.Debug("name strategy",
				zap.String("strategy", step.Name()),
				zap.String("outcome", "found"),
				zap.String("source", string(c.Source)),
			)
			return c, true
		}
	}

	return Candidate{}, false
}

func runStep(ctx context.Context, step Strategy, in *Input) (c Candidate, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, ok, err = Candidate{}, false, fmt.Errorf("strategy panicked: %v", r)
		}
	}()

	c, ok, err = step.Resolve(ctx, in)
	if err != nil || !ok {
		return Candidate{}, false, err
	}

	c.Value = strings.TrimSpace(c.Value)
	return c, c.Value != "", nil
}
