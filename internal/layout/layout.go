// Package layout surfaces header-region candidates from the first page of a
// document and decides whether a short string reads like a person's name.
package layout

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/spigell/resume-analyzer/internal/document"
)

// Denylist holds résumé boilerplate terms that are never part of a name.
var Denylist = []string{
	"resume", "curriculum", "cv", "linkedin", ".com", "email", "phone", "mobile", "tel",
	"github", "address", "objective", "profile", "summary", "skills", "experience",
}

// fieldLabel matches spans that open with a form label such as "Name:".
// Those are answered by the labeled-name pattern, not by the layout.
var fieldLabel = regexp.MustCompile(`(?i)^(?:full name|name|candidate)\s*[:\-]`)

const (
	minSpanLength = 2
	minNameTokens = 2
	maxNameTokens = 4
)

// ScanFirstPage returns the non-empty spans of page 1 that could be a name.
// Boilerplate, anything with an "@", labeled fields like "Name: Jane Doe" and
// spans shorter than two characters are dropped. A document without pages
// yields no spans.
func ScanFirstPage(doc document.Document) ([]document.Span, error) {
	if doc.NumPages() == 0 {
		return nil, nil
	}

	page, err := doc.Page(1)
	if err != nil {
		return nil, err
	}

	var spans []document.Span
	for _, span := range page.Spans() {
		text := strings.TrimSpace(span.Text)
		if len([]rune(text)) < minSpanLength || strings.Contains(text, "@") || containsDenied(text) || fieldLabel.MatchString(text) {
			continue
		}
		span.Text = text
		spans = append(spans, span)
	}

	return spans, nil
}

// LooksLikeName reports whether s has two to four whitespace-separated tokens,
// no digits, no "@", no boilerplate token, and at most one token that is
// neither capitalised nor fully upper-case.
func LooksLikeName(s string) bool {
	tokens := strings.Fields(s)
	if len(tokens) < minNameTokens || len(tokens) > maxNameTokens {
		return false
	}

	if strings.Contains(s, "@") || strings.IndexFunc(s, unicode.IsDigit) >= 0 {
		return false
	}

	capitalised := 0
	for _, token := range tokens {
		if deniedToken(token) {
			return false
		}
		if startsUpper(token) || isUpper(token) {
			capitalised++
		}
	}

	return capitalised >= max(1, len(tokens)-1)
}

func containsDenied(s string) bool {
	lower := strings.ToLower(s)
	for _, term := range Denylist {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// deniedToken matches a token against the denylist. Word terms must match the
// whole token (ignoring surrounding punctuation) so that names such as
// "Stella" survive the "tel" term; dotted terms like ".com" match anywhere.
func deniedToken(token string) bool {
	lower := strings.ToLower(token)
	word := strings.TrimFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, term := range Denylist {
		if strings.HasPrefix(term, ".") {
			if strings.Contains(lower, term) {
				return true
			}
			continue
		}
		if word == term {
			return true
		}
	}
	return false
}

func startsUpper(token string) bool {
	for _, r := range token {
		return unicode.IsUpper(r)
	}
	return false
}

func isUpper(token string) bool {
	hasLetter := false
	for _, r := range token {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
