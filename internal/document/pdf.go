package document

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

const (
	// US Letter height in points, used when a page carries no MediaBox.
	defaultPageHeight = 792
	maxTreeDepth      = 32
)

var errClosed = errors.New("document is closed")

type pdfDocument struct {
	reader *pdf.Reader
	pages  int
	closed bool
}

// Open parses raw as a PDF. The returned document must be closed by the
// caller. Parse failures are reported as ErrUnreadable.
func Open(raw []byte) (doc Document, err error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrUnreadable)
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: %v", ErrUnreadable, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	return &pdfDocument{reader: reader, pages: reader.NumPage()}, nil
}

func (d *pdfDocument) NumPages() int {
	if d.closed {
		return 0
	}
	return d.pages
}

func (d *pdfDocument) Page(n int) (page *Page, err error) {
	if d.closed {
		return nil, errClosed
	}
	if n < 1 || n > d.pages {
		return nil, fmt.Errorf("page %d out of range [1, %d]", n, d.pages)
	}

	defer func() {
		if r := recover(); r != nil {
			page = nil
			err = fmt.Errorf("%w: page %d: %v", ErrUnreadable, n, r)
		}
	}()

	p := d.reader.Page(n)
	if p.V.IsNull() {
		return nil, fmt.Errorf("%w: page %d is missing", ErrUnreadable, n)
	}

	content := p.Content()
	glyphs := make([]glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, glyph{
			text: t.S,
			font: t.Font,
			size: t.FontSize,
			x:    t.X,
			y:    t.Y,
			w:    t.W,
		})
	}

	return &Page{Number: n, Lines: buildLines(glyphs, pageHeight(p))}, nil
}

func (d *pdfDocument) Close() error {
	d.closed = true
	d.reader = nil
	return nil
}

// pageHeight reads the MediaBox of the page, walking up the page tree since
// the box is inheritable.
func pageHeight(p pdf.Page) float64 {
	v := p.V
	for depth := 0; depth < maxTreeDepth && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
				return h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageHeight
}
