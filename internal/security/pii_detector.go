package security

import (
	"regexp"
	"strings"
)

// DefaultPIIKeywords are identifiers a farmer should not send to a hosted model.
var DefaultPIIKeywords = []string{"aadhaar", "aadhar", "pan card", "bank account", "ifsc", "password", "otp"}

type identifierPattern struct {
	label string
	re    *regexp.Regexp
}

// identifierPatterns match the shape of Indian identity and bank numbers.
// Order matters: a 12 digit Aadhaar number must not be reported as a phone.
var identifierPatterns = []identifierPattern{
	{"aadhaar number", regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`)},
	{"pan number", regexp.MustCompile(`\b[A-Z]{5}\d{4}[A-Z]\b`)},
	{"ifsc code", regexp.MustCompile(`\b[A-Z]{4}0[A-Z0-9]{6}\b`)},
	{"mobile number", regexp.MustCompile(`(?:\+91[\s-]?)?\b[6-9]\d{9}\b`)},
}

// PIIDetector checks free text for personal identifiers, by keyword and by
// number shape. Keywords match whole words only, so place names such as
// Kotputli do not trip "otp".
type PIIDetector struct {
	keywords []keywordPattern
}

type keywordPattern struct {
	keyword string
	re      *regexp.Regexp
}

func NewPIIDetector(keywords []string) *PIIDetector {
	patterns := make([]keywordPattern, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		words := strings.Fields(k)
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		patterns = append(patterns, keywordPattern{
			keyword: k,
			re:      regexp.MustCompile(`(?i)\b` + strings.Join(words, `\s+`) + `\b`),
		})
	}
	return &PIIDetector{keywords: patterns}
}

// Detect reports whether text carries an identifier, and which one.
func (d *PIIDetector) Detect(text string) (bool, string) {
	for _, kw := range d.keywords {
		if kw.re.MatchString(text) {
			return true, kw.keyword
		}
	}
	for _, p := range identifierPatterns {
		if p.re.MatchString(text) {
			return true, p.label
		}
	}
	return false, ""
}
