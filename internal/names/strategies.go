package names

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/spigell/resume-analyzer/internal/layout"
	"github.com/spigell/resume-analyzer/internal/ner"
)

// fontCandidates is how many of the largest spans are checked for a name.
const fontCandidates = 6

// labeledName matches explicit fields such as "Name: Jane Doe". It is applied
// one line at a time so the capture never runs into the next line.
var labeledName = regexp.MustCompile(`(?i)(?:Name|Full Name|Candidate)\s*[:\-]\s*([A-Z][A-Za-z.\s]{1,120})`)

type fontStrategy struct{}

// Font picks the most prominent span of page 1. It falls back to the largest
// span verbatim when none of the top candidates reads like a name.
func Font() Strategy {
	return fontStrategy{}
}

func (fontStrategy) Name() string { return "font" }

func (fontStrategy) Resolve(_ context.Context, in *Input) (Candidate, bool, error) {
	spans, err := layout.ScanFirstPage(in.Doc)
	if err != nil {
		return Candidate{}, false, err
	}
	if len(spans) == 0 {
		return Candidate{}, false, nil
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].FontSize != spans[j].FontSize {
			return spans[i].FontSize > spans[j].FontSize
		}
		return spans[i].Top < spans[j].Top
	})

	for _, span := range spans[:min(fontCandidates, len(spans))] {
		if layout.LooksLikeName(span.Text) {
			return Candidate{Value: span.Text, Source: SourceLayout}, true, nil
		}
	}

	return Candidate{Value: spans[0].Text, Source: SourceLayout}, true, nil
}

type textStrategy struct {
	name      string
	text      func(in *Input) (string, error)
	annotator ner.Annotator
}

// Header looks for a labeled name, then a recognized person, in the first
// lines of page 1.
func Header(annotator ner.Annotator) Strategy {
	return &textStrategy{name: "header", text: (*Input).Header, annotator: annotator}
}

// FullText is Header applied to the text of the whole document.
func FullText(annotator ner.Annotator) Strategy {
	return &textStrategy{name: "full_text", text: (*Input).FullText, annotator: annotator}
}

func (s *textStrategy) Name() string { return s.name }

func (s *textStrategy) Resolve(ctx context.Context, in *Input) (Candidate, bool, error) {
	text, err := s.text(in)
	if err != nil {
		return Candidate{}, false, err
	}

	return fromText(ctx, text, s.annotator)
}

// fromText applies the labeled pattern and then the recognizer to text.
func fromText(ctx context.Context, text string, annotator ner.Annotator) (Candidate, bool, error) {
	if strings.TrimSpace(text) == "" {
		return Candidate{}, false, nil
	}

	for _, line := range strings.Split(text, "\n") {
		m := labeledName.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if value := strings.TrimSpace(m[1]); layout.LooksLikeName(value) {
			return Candidate{Value: value, Source: SourcePattern}, true, nil
		}
		// only the first labeled field is considered
		break
	}

	if annotator == nil {
		return Candidate{}, false, nil
	}

	entities, err := annotator.Annotate(ctx, text)
	if err != nil {
		return Candidate{}, false, err
	}

	persons := ner.Persons(entities)
	if len(persons) == 0 {
		return Candidate{}, false, nil
	}

	for _, person := range persons {
		if layout.LooksLikeName(person) {
			return Candidate{Value: person, Source: SourceEntity}, true, nil
		}
	}

	return Candidate{Value: persons[0], Source: SourceEntity}, true, nil
}
