// Package ner wraps named-entity recognizers behind a single Annotator
// contract. Only the PERSON label is consumed by the rest of the module.
package ner

import (
	"context"
	"strings"
)

// LabelPerson is the entity label of people.
const LabelPerson = "PERSON"

// Entity is a labeled span of text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Annotator labels spans of text. Implementations must be safe for
// concurrent use and keep no state between calls.
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]Entity, error)
}

// Persons returns the trimmed text of every PERSON entity in order.
func Persons(entities []Entity) []string {
	persons := make([]string, 0, len(entities))
	for _, entity := range entities {
		if !strings.EqualFold(entity.Label, LabelPerson) {
			continue
		}
		if text := strings.TrimSpace(entity.Text); text != "" {
			persons = append(persons, text)
		}
	}
	return persons
}

// Nop never finds anything. It backs the "none" provider.
type Nop struct{}

// Annotate implements Annotator.
func (Nop) Annotate(context.Context, string) ([]Entity, error) { return nil, nil }
