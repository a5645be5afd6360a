package names

import (
	"strings"

	"github.com/spigell/resume-analyzer/internal/document"
)

const headerLines = 10

// Input carries the document through one resolution and memoises the text
// views strategies share. It must not outlive the Resolve call.
type Input struct {
	Doc document.Document

	header    *string
	headerErr error
	fullText  *string
	fullErr   error
}

// NewInput wraps doc for a single resolution.
func NewInput(doc document.Document) *Input {
	return &Input{Doc: doc}
}

// Header returns the first ten non-empty trimmed lines of page 1.
func (in *Input) Header() (string, error) {
	if in.header != nil || in.headerErr != nil {
		return deref(in.header), in.headerErr
	}

	text, err := in.readHeader()
	if err != nil {
		in.headerErr = err
		return "", err
	}
	in.header = &text
	return text, nil
}

func (in *Input) readHeader() (string, error) {
	if in.Doc.NumPages() == 0 {
		return "", nil
	}

	page, err := in.Doc.Page(1)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, headerLines)
	for _, line := range strings.Split(page.Text(), "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == headerLines {
			break
		}
	}

	return strings.Join(lines, "\n"), nil
}

// FullText returns the text of the whole document.
func (in *Input) FullText() (string, error) {
	if in.fullText != nil || in.fullErr != nil {
		return deref(in.fullText), in.fullErr
	}

	text, _, err := document.ExtractText(in.Doc)
	if err != nil {
		in.fullErr = err
		return "", err
	}
	in.fullText = &text
	return text, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
