// Package document turns a paged binary document into per-page text and
// positioned text spans.
package document

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnreadable is returned when the byte stream cannot be parsed as a paged
// document. It is fatal to the pipeline call that hit it.
var ErrUnreadable = errors.New("document unreadable")

// Span is a contiguous run of same-style text on one line of a page.
// Top is the baseline offset from the top edge of the page, so smaller values
// are higher up.
type Span struct {
	Text     string  `json:"text"`
	Font     string  `json:"font,omitempty"`
	FontSize float64 `json:"font_size"`
	Left     float64 `json:"left"`
	Right    float64 `json:"right"`
	Top      float64 `json:"top"`
}

// Line is a row of spans sharing a baseline, ordered left to right.
type Line struct {
	Spans []Span
}

// Text joins the spans of the line, inserting a single space wherever the
// horizontal gap between two spans looks like a word break.
func (l Line) Text() string {
	var sb strings.Builder
	for i, span := range l.Spans {
		if i > 0 && spaceBetween(l.Spans[i-1].Right, span.Left, l.Spans[i-1].FontSize) {
			sb.WriteByte(' ')
		}
		sb.WriteString(span.Text)
	}
	return strings.TrimSpace(sb.String())
}

// Page is a single page with its lines ordered top to bottom.
type Page struct {
	Number int
	Lines  []Line
}

// Text returns the plain text of the page, one line per row.
func (p *Page) Text() string {
	if p == nil {
		return ""
	}
	rows := make([]string, 0, len(p.Lines))
	for _, line := range p.Lines {
		if text := line.Text(); text != "" {
			rows = append(rows, text)
		}
	}
	return strings.Join(rows, "\n")
}

// Spans returns every span of the page in reading order.
func (p *Page) Spans() []Span {
	if p == nil {
		return nil
	}
	var spans []Span
	for _, line := range p.Lines {
		spans = append(spans, line.Spans...)
	}
	return spans
}

// Document is an opened paged document. Pages are numbered from 1.
// Close releases the handle; using the document afterwards is an error.
type Document interface {
	NumPages() int
	Page(n int) (*Page, error)
	Close() error
}

// ExtractText returns the page texts joined by a newline in page order with
// the surrounding whitespace of the whole result trimmed, and the page count.
func ExtractText(doc Document) (string, int, error) {
	texts, err := PageTexts(doc)
	if err != nil {
		return "", 0, err
	}

	return strings.TrimSpace(strings.Join(texts, "\n")), len(texts), nil
}

// PageTexts returns the plain text of every page in page order.
func PageTexts(doc Document) ([]string, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: no document", ErrUnreadable)
	}

	n := doc.NumPages()
	texts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page, err := doc.Page(i)
		if err != nil {
			return nil, err
		}
		texts = append(texts, page.Text())
	}

	return texts, nil
}
