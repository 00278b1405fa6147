package helpers

import (
	"net/url"
	"strings"
)

// Domain extracts the lower-cased host from a URL. Schemeless inputs like
// example.com/path are handled. When parsing fails the raw input is
// returned so callers always have a grouping key.
func Domain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err == nil && parsed.Host == "" && parsed.Scheme == "" {
		if strings.HasPrefix(raw, "//") {
			parsed, err = url.Parse("https:" + raw)
		} else {
			parsed, err = url.Parse("https://" + raw)
		}
	}
	if err != nil || parsed.Host == "" {
		return strings.ToLower(raw)
	}
	host := strings.ToLower(parsed.Host)
	if idx := strings.IndexByte(host, ':'); idx >= 0 {
		host = host[:idx]
	}
	return host
}
