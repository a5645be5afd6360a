package ner

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Prose is a pre-trained statistical recognizer running in process.
type Prose struct{}

// NewProse returns the in-process recognizer.
func NewProse() *Prose {
	return &Prose{}
}

// Annotate implements Annotator.
func (p *Prose) Annotate(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("prose annotate: %w", err)
	}

	found := doc.Entities()
	entities := make([]Entity, 0, len(found))
	for _, ent := range found {
		entities = append(entities, Entity{Text: ent.Text, Label: strings.ToUpper(ent.Label)})
	}

	return entities, nil
}
