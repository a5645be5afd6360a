// Package documenttest provides in-memory documents and a minimal PDF writer
// for tests.
package documenttest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/resume-analyzer/internal/document"
)

// Doc is an in-memory document.Document.
type Doc struct {
	Pages []*document.Page
	// PageErr, when set, is returned by every Page call.
	PageErr error

	Closed bool
}

// Lines builds a page whose lines each hold a single span of the given size.
// Lines are stacked top to bottom in the given order.
func Lines(size float64, texts ...string) *document.Page {
	page := &document.Page{}
	for i, text := range texts {
		page.Lines = append(page.Lines, document.Line{Spans: []document.Span{{
			Text:     text,
			FontSize: size,
			Left:     72,
			Right:    72 + float64(len(text))*size*0.5,
			Top:      72 + float64(i)*size*1.5,
		}}})
	}
	return page
}

// NumPages implements document.Document.
func (d *Doc) NumPages() int { return len(d.Pages) }

// Page implements document.Document.
func (d *Doc) Page(n int) (*document.Page, error) {
	if d.Closed {
		return nil, errors.New("document is closed")
	}
	if d.PageErr != nil {
		return nil, d.PageErr
	}
	if n < 1 || n > len(d.Pages) {
		return nil, fmt.Errorf("page %d out of range", n)
	}
	page := d.Pages[n-1]
	if page == nil {
		page = &document.Page{}
	}
	page.Number = n
	return page, nil
}

// Close implements document.Document.
func (d *Doc) Close() error {
	d.Closed = true
	return nil
}

// Text is one run of text placed on a PDF page. Y is measured from the
// bottom of the page, as in PDF user space.
type Text struct {
	Value string
	Size  float64
	X, Y  float64
	Bold  bool
}

// PDF renders pages of positioned text into a minimal, uncompressed PDF
// using the standard Helvetica fonts with fixed 500/1000 em glyph widths.
func PDF(pages ...[]Text) []byte {
	const (
		catalogID = 1
		pagesID   = 2
		regularID = 3
		boldID    = 4
		firstPage = 5
	)

	objects := map[int]string{}
	kids := make([]string, 0, len(pages))

	widths := strings.TrimSpace(strings.Repeat("500 ", 126-32+1))
	font := func(base string) string {
		return fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [%s] >>", base, widths)
	}
	objects[regularID] = font("Helvetica")
	objects[boldID] = font("Helvetica-Bold")

	for i, texts := range pages {
		pageID := firstPage + i*2
		contentID := pageID + 1
		kids = append(kids, fmt.Sprintf("%d 0 R", pageID))

		var stream strings.Builder
		for _, t := range texts {
			fontName := "F1"
			if t.Bold {
				fontName = "F2"
			}
			fmt.Fprintf(&stream, "BT /%s %g Tf %g %g Td (%s) Tj ET\n", fontName, t.Size, t.X, t.Y, escape(t.Value))
		}

		objects[pageID] = fmt.Sprintf(
			"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R /F2 %d 0 R >> >> /Contents %d 0 R >>",
			pagesID, regularID, boldID, contentID,
		)
		objects[contentID] = fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", stream.Len(), stream.String())
	}

	objects[catalogID] = fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesID)
	objects[pagesID] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	total := firstPage + len(pages)*2
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, total)
	for id := 1; id < total; id++ {
		offsets[id] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", id, objects[id])
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", total)
	buf.WriteString("0000000000 65535 f \n")
	for id := 1; id < total; id++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[id])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", total, catalogID, xref)

	return buf.Bytes()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
