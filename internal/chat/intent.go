package chat

import (
	"strings"

	"github.com/vestnikmedia/vestnik/internal/lang"
)

// Intent is the routed conversation branch for one message.
type Intent int

const (
	IntentCasual Intent = iota
	IntentAnalysis
	IntentWebSearch
)

func (i Intent) String() string {
	switch i {
	case IntentCasual:
		return "casual"
	case IntentAnalysis:
		return "analysis"
	case IntentWebSearch:
		return "web_search"
	}
	return "unknown"
}

var quoteStripper = strings.NewReplacer(`"`, "", "'", "", "„", "", "“", "", "”", "", "«", "", "»", "")

// IsCasualGreeting reports whether the message reads as small talk.
func IsCasualGreeting(message string, pack *lang.Pack) bool {
	lower := strings.ToLower(message)
	for _, g := range pack.CasualGreetings {
		if strings.Contains(lower, g) {
			return true
		}
	}
	return false
}

// Classify routes a message. Greetings win over everything, then
// analysis keywords, then the stronger priority web phrases, then
// general web keywords; anything else is small talk. Quotes are
// stripped before the web checks so quoted search phrases still
// trigger them.
func Classify(message string, pack *lang.Pack) Intent {
	if IsCasualGreeting(message, pack) {
		return IntentCasual
	}
	cleaned := strings.ToLower(quoteStripper.Replace(message))

	for _, k := range pack.AnalysisKeywords {
		if strings.Contains(cleaned, k) {
			return IntentAnalysis
		}
	}
	for _, p := range pack.PriorityWebPatterns {
		if strings.Contains(cleaned, p) {
			return IntentWebSearch
		}
	}
	for _, k := range pack.WebSearchKeywords {
		if strings.Contains(cleaned, k) {
			return IntentWebSearch
		}
	}
	return IntentCasual
}
