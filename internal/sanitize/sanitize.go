// Package sanitize validates and cleans user-supplied input at the write
// boundary. Reads trust stored data; every mutation goes through here first.
package sanitize

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	scriptRe     = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	eventAttrRe  = regexp.MustCompile(`(?i)\s*(on\w+|javascript:|data:)\s*=\s*["'][^"']*["']`)
	nameDangerRe = regexp.MustCompile(`[<>"'&]`)
)

var htmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Text strips markup, escapes dangerous characters and caps the length.
func Text(input string, maxLength int) string {
	if input == "" {
		return ""
	}
	cleaned := htmlTagRe.ReplaceAllString(strings.TrimSpace(input), "")
	cleaned = htmlEscaper.Replace(cleaned)
	return truncate(cleaned, maxLength)
}

// HTML keeps basic formatting in rich-text fields but removes script blocks
// and inline event handlers.
func HTML(input string, maxLength int) string {
	if input == "" {
		return ""
	}
	cleaned := scriptRe.ReplaceAllString(strings.TrimSpace(input), "")
	cleaned = eventAttrRe.ReplaceAllString(cleaned, "")
	return truncate(cleaned, maxLength)
}

// Name removes the characters forbidden in display names.
func Name(input string) string {
	return nameDangerRe.ReplaceAllString(strings.TrimSpace(input), "")
}

// Email lower-cases, trims and validates an address. Returns "" when the
// address is malformed or too long.
func Email(input string, maxLength int) string {
	cleaned := strings.ToLower(strings.TrimSpace(input))
	if cleaned == "" || len(cleaned) > maxLength {
		return ""
	}
	addr, err := mail.ParseAddress(cleaned)
	if err != nil || addr.Address != cleaned {
		return ""
	}
	return cleaned
}

// URL validates an absolute http(s) URL, optionally restricted to a set of
// domains (a domain matches itself and its subdomains). Returns "" on any
// failure.
func URL(input string, allowedDomains ...string) string {
	cleaned := strings.TrimSpace(input)
	if cleaned == "" {
		return ""
	}
	u, err := url.Parse(cleaned)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	if len(allowedDomains) > 0 {
		host := strings.ToLower(u.Hostname())
		allowed := false
		for _, domain := range allowedDomains {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				allowed = true
				break
			}
		}
		if !allowed {
			return ""
		}
	}
	return cleaned
}

// LinkedInURL accepts only linkedin.com links.
func LinkedInURL(input string) string { return URL(input, "linkedin.com") }

// TwitterURL accepts twitter.com and x.com links.
func TwitterURL(input string) string { return URL(input, "twitter.com", "x.com") }

// InstagramURL accepts only instagram.com links.
func InstagramURL(input string) string { return URL(input, "instagram.com") }

// List sanitizes a comma-separated string or slice into a bounded slice of
// clean items, dropping empties.
func List(input []string, maxItems, maxItemLength int) []string {
	out := make([]string, 0, len(input))
	for _, item := range input {
		if len(out) >= maxItems {
			break
		}
		cleaned := Text(item, maxItemLength)
		if cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// SplitList splits a comma-separated string and sanitizes each item.
func SplitList(input string, maxItems, maxItemLength int) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	return List(strings.Split(input, ","), maxItems, maxItemLength)
}

// Date parses a date string and rejects values outside 1900..current year.
func Date(input string) (time.Time, bool) {
	if input == "" {
		return time.Time{}, false
	}
	var parsed time.Time
	var err error
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		parsed, err = time.Parse(layout, input)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, false
	}
	year := parsed.Year()
	if year < 1900 || year > time.Now().Year() {
		return time.Time{}, false
	}
	return parsed, true
}

// truncate caps s at maxLength bytes without splitting a UTF-8 rune.
func truncate(s string, maxLength int) string {
	if maxLength <= 0 || len(s) <= maxLength {
		return s
	}
	cut := maxLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
