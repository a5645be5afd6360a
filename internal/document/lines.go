package document

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// A gap of at least half a space width is a word break. Space width is
	// estimated as a quarter of the font size when the font gives no metrics.
	spaceWidthRatio = 0.25
	spaceThreshold  = 0.5
	// Gaps this wide (in font sizes) separate columns rather than words.
	columnGapRatio = 1.5
	// Glyphs whose baselines differ by less than this share of the font size
	// sit on the same line.
	lineTolerance = 0.5
	sizeTolerance = 0.01
)

// glyph is a single positioned character as reported by the PDF interpreter.
// y grows upwards from the bottom of the page.
type glyph struct {
	text string
	font string
	size float64
	x    float64
	y    float64
	w    float64
}

func spaceBetween(prevRight, nextLeft, size float64) bool {
	return nextLeft-prevRight >= size*spaceWidthRatio*spaceThreshold
}

// buildLines groups glyphs into lines (by baseline) and lines into spans
// (runs of the same font and size without a column-sized gap).
func buildLines(glyphs []glyph, pageHeight float64) []Line {
	if len(glyphs) == 0 {
		return nil
	}

	sorted := make([]glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if g.size <= 0 || strings.TrimSpace(g.text) == "" {
			continue
		}
		if g.w <= 0 {
			g.w = g.size * 0.5 * float64(len([]rune(g.text)))
		}
		sorted = append(sorted, g)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].y > sorted[j].y
	})

	var rows [][]glyph
	for _, g := range sorted {
		if n := len(rows); n > 0 {
			head := rows[n-1][0]
			if math.Abs(head.y-g.y) <= math.Max(head.size, g.size)*lineTolerance {
				rows[n-1] = append(rows[n-1], g)
				continue
			}
		}
		rows = append(rows, []glyph{g})
	}

	lines := make([]Line, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].x < row[j].x })
		if spans := buildSpans(row, pageHeight); len(spans) > 0 {
			lines = append(lines, Line{Spans: spans})
		}
	}

	return lines
}

func buildSpans(row []glyph, pageHeight float64) []Span {
	var (
		spans []Span
		sb    strings.Builder
		cur   *Span
	)

	flush := func() {
		if cur == nil {
			return
		}
		cur.Text = strings.TrimSpace(norm.NFKC.String(sb.String()))
		if cur.Text != "" {
			spans = append(spans, *cur)
		}
		cur = nil
		sb.Reset()
	}

	for _, g := range row {
		if cur != nil {
			gap := g.x - cur.Right
			sameStyle := g.font == cur.Font && math.Abs(g.size-cur.FontSize) < sizeTolerance
			if !sameStyle || gap >= cur.FontSize*columnGapRatio {
				flush()
			} else if spaceBetween(cur.Right, g.x, cur.FontSize) {
				sb.WriteByte(' ')
			}
		}

		if cur == nil {
			cur = &Span{
				Font:     g.font,
				FontSize: g.size,
				Left:     g.x,
				Right:    g.x,
				Top:      pageHeight - g.y,
			}
		}

		sb.WriteString(g.text)
		if right := g.x + g.w; right > cur.Right {
			cur.Right = right
		}
	}
	flush()

	return spans
}
