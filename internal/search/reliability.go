package search

import "strings"

// highReliabilitySources is a fixed allow-list of well-known outlets.
// Matching is substring containment so subdomains qualify too.
var highReliabilitySources = []string{
	"bbc.com", "reuters.com", "ap.org", "cnn.com", "guardian.com",
	"bnt.bg", "nova.bg", "btvnovinite.bg", "dnevnik.bg", "mediapool.bg",
}

// Reliability classifies a source domain as "high" or "medium".
func Reliability(domain string) string {
	for _, source := range highReliabilitySources {
		if strings.Contains(domain, source) {
			return "high"
		}
	}
	return "medium"
}
