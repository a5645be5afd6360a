package document

import "testing"

func word(text string, size, x, y float64) []glyph {
	glyphs := make([]glyph, 0, len(text))
	for i, r := range text {
		glyphs = append(glyphs, glyph{text: string(r), font: "Helvetica", size: size, x: x + float64(i)*size*0.5, y: y, w: size * 0.5})
	}
	return glyphs
}

func TestBuildLinesGroupsByBaseline(t *testing.T) {
	t.Parallel()

	var glyphs []glyph
	// Emitted out of order on purpose.
	glyphs = append(glyphs, word("Smith", 20, 72+5*10+10, 700)...)
	glyphs = append(glyphs, word("john", 10, 72, 650)...)
	glyphs = append(glyphs, word("Jane", 20, 72, 700.5)...)

	lines := buildLines(glyphs, 792)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	if got := lines[0].Text(); got != "Jane Smith" {
		t.Fatalf("unexpected first line %q", got)
	}
	if got := lines[1].Text(); got != "john" {
		t.Fatalf("unexpected second line %q", got)
	}
}

func TestBuildSpansSplitsOnStyleAndColumns(t *testing.T) {
	t.Parallel()

	row := word("Name", 12, 72, 700)
	bold := word("Jane", 16, 72+4*6+6, 700)
	for i := range bold {
		bold[i].font = "Helvetica-Bold"
	}
	row = append(row, bold...)
	// A far-right column on the same baseline.
	row = append(row, word("Pune", 16, 400, 700)...)

	lines := buildLines(row, 792)
	if len(lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(lines))
	}

	spans := lines[0].Spans
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d: %+v", len(spans), spans)
	}
	if spans[1].Text != "Jane" || spans[1].FontSize != 16 {
		t.Fatalf("unexpected bold span %+v", spans[1])
	}
	if spans[2].Text != "Pune" {
		t.Fatalf("unexpected column span %+v", spans[2])
	}
	if spans[0].Top != 92 {
		t.Fatalf("expected top 92, got %v", spans[0].Top)
	}
}

func TestBuildSpansNormalisesLigatures(t *testing.T) {
	t.Parallel()

	glyphs := []glyph{
		{text: "ﬁ", font: "F", size: 10, x: 10, y: 100, w: 5},
		{text: "le", font: "F", size: 10, x: 15, y: 100, w: 10},
	}

	lines := buildLines(glyphs, 200)
	if got := lines[0].Text(); got != "file" {
		t.Fatalf("expected ligature to be expanded, got %q", got)
	}
}

func TestBuildLinesSkipsBlankGlyphs(t *testing.T) {
	t.Parallel()

	if lines := buildLines([]glyph{{text: " ", size: 10}, {text: "x", size: 0}}, 792); len(lines) != 0 {
		t.Fatalf("expected no lines, got %+v", lines)
	}
}
