package intent

import "regexp"

// piiPatterns cover the identifiers users paste into chat despite being
// told not to: Indian mobile numbers, PAN, email addresses, and Aadhaar.
var piiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:\+?91[-\s]?)?[6-9]\d{9}\b`),
	regexp.MustCompile(`\b[A-Z]{5}\d{4}[A-Z]\b`),
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`),
}

const redacted = "[redacted]"

// Sanitize redacts personally identifiable information from user text
// before it is stored or forwarded to external collaborators.
func Sanitize(text string) string {
	if text == "" {
		return text
	}
	out := text
	for _, pat := range piiPatterns {
		out = pat.ReplaceAllString(out, redacted)
	}
	return out
}
