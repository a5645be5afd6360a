// Package contact pulls e-mail addresses, phone numbers and known skills out
// of free text.
package contact

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used for numbers written without a country code.
const DefaultRegion = "IN"

var (
	emailRe = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	// phoneRe finds phone-shaped runs on a single line; validity is decided by
	// the phone number parser.
	phoneRe = regexp.MustCompile(`\+?\(?\d[\d \t().\-]{6,18}\d`)
)

// Email returns the first e-mail address in text, or "".
func Email(text string) string {
	return emailRe.FindString(text)
}

// Phone returns the first valid phone number in text formatted in the
// international format, or "". Numbers without a country code are read in
// region (DefaultRegion when empty).
func Phone(text, region string) string {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = DefaultRegion
	}

	for _, candidate := range phoneRe.FindAllString(text, -1) {
		if formatted := parsePhone(candidate, region); formatted != "" {
			return formatted
		}
	}

	return ""
}

// parsePhone tries every contiguous run of the candidate's tokens, leftmost
// first and longest first at each position, so stray years or postcodes on
// either side of a number do not hide it.
func parsePhone(candidate, region string) string {
	tokens := strings.Fields(candidate)
	for start := range tokens {
		for end := len(tokens); end > start; end-- {
			if formatted := formatPhone(strings.Join(tokens[start:end], " "), region); formatted != "" {
				return formatted
			}
		}
	}
	return ""
}

func formatPhone(candidate, region string) (formatted string) {
	defer func() {
		if recover() != nil {
			formatted = ""
		}
	}()

	num, err := phonenumbers.Parse(candidate, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return ""
	}

	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
