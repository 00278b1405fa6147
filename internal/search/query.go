package search

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vestnikmedia/vestnik/internal/lang"
)

// BuildQuery rewrites a free-text user query into a provider-optimized
// query string. It never fails; the worst case returns the input
// unchanged.
//
// Languages with full rewrite rules (Bulgarian) get the first matching
// rule's keyword cluster, falling back to stopword-stripped keyword
// extraction. Languages without rules (English) get the original query
// quoted plus a topical or generic suffix.
func BuildQuery(rawQuery string, tag lang.Tag) string {
	pack := lang.For(tag)
	lower := strings.ToLower(rawQuery)

	for _, rule := range pack.QueryRules {
		if matches(lower, rule.Triggers) {
			return rule.Rewrite
		}
	}
	for _, rule := range pack.SuffixRules {
		if matches(lower, rule.Triggers) {
			return fmt.Sprintf("%q %s", rawQuery, rule.Rewrite)
		}
	}

	if len(pack.Stopwords) > 0 {
		stop := make(map[string]bool, len(pack.Stopwords))
		for _, w := range pack.Stopwords {
			stop[w] = true
		}
		var keep []string
		for _, w := range strings.Fields(lower) {
			if stop[w] || utf8.RuneCountInString(w) <= 2 {
				continue
			}
			keep = append(keep, w)
			if len(keep) == 5 {
				break
			}
		}
		if len(keep) > 0 {
			return strings.Join(keep, " ")
		}
		return rawQuery
	}

	if pack.DefaultSuffix != "" {
		return fmt.Sprintf("%q %s", rawQuery, pack.DefaultSuffix)
	}
	return rawQuery
}

func matches(lowerQuery string, triggers []string) bool {
	for _, t := range triggers {
		if strings.Contains(lowerQuery, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
