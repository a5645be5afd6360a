package ner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/logger"
)

const (
	systemInstruction   = "You are a precise named-entity recognizer. You answer with JSON only."
	defaultMaxLogLength = 200
	maxInputRunes       = 20000
)

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

// Gemini asks a hosted model to label entities.
type Gemini struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewGemini builds a recognizer on top of a Gemini content generator.
func NewGemini(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Gemini {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gemini{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Annotate implements Annotator.
func (g *Gemini) Annotate(ctx context.Context, text string) ([]Entity, error) {
	if g.generator == nil {
		return nil, fmt.Errorf("gemini generator is required")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	if runes := []rune(text); len(runes) > maxInputRunes {
		text = string(runes[:maxInputRunes])
	}

	prompt := buildPrompt(text)

	g.logger.Debug("gemini annotate request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, g.maxLogLen)),
	)

	raw, err := g.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("gemini annotate response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, g.maxLogLen)),
	)

	return parseEntities(raw)
}

func buildPrompt(text string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Return a JSON array of {\"text\", \"label\"} entities for:\n{{TEXT}}"
	}
	return strings.ReplaceAll(template, "{{TEXT}}", text)
}

// parseEntities accepts either a bare array or an object with an "entities"
// array, optionally wrapped in a markdown code fence.
func parseEntities(raw string) ([]Entity, error) {
	cleaned := extractJSON(raw)

	var items []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		var wrapped struct {
			Entities []map[string]any `json:"entities"`
		}
		if wrapErr := json.Unmarshal([]byte(cleaned), &wrapped); wrapErr != nil {
			return nil, fmt.Errorf("parse gemini response: %w", err)
		}
		items = wrapped.Entities
	}

	entities := make([]Entity, 0, len(items))
	for _, item := range items {
		text := coerceString(item["text"])
		if text == "" {
			continue
		}
		entities = append(entities, Entity{
			Text:  text,
			Label: strings.ToUpper(coerceString(item["label"])),
		})
	}

	return entities, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
