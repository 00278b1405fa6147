package chat

import (
	"testing"

	"github.com/vestnikmedia/vestnik/internal/lang"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		message string
		tag     lang.Tag
		want    Intent
	}{
		{"bulgarian greeting", "Здравей, как си?", lang.Bulgarian, IntentCasual},
		{"greeting wins over search keywords", "hi, search for news about elections", lang.English, IntentCasual},
		{"bulgarian priority web pattern", "дай ми статии за спорт", lang.Bulgarian, IntentWebSearch},
		{"bulgarian analysis", "анализирай статията за икономиката", lang.Bulgarian, IntentAnalysis},
		{"english analysis", "analyze the latest article about economy", lang.English, IntentAnalysis},
		{"english web search", "find news about elections", lang.English, IntentWebSearch},
		{"quoted phrase still routes to web", `дай ми статии за "изкуствен интелект"`, lang.Bulgarian, IntentWebSearch},
		{"no keywords defaults to casual", "благодаря много", lang.Bulgarian, IntentCasual},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.message, lang.For(tc.tag)); got != tc.want {
				t.Fatalf("Classify(%q) = %v, want %v", tc.message, got, tc.want)
			}
		})
	}
}

func TestIntentString(t *testing.T) {
	if IntentCasual.String() != "casual" || IntentAnalysis.String() != "analysis" || IntentWebSearch.String() != "web_search" {
		t.Fatalf("unexpected intent names: %s %s %s", IntentCasual, IntentAnalysis, IntentWebSearch)
	}
	if Intent(42).String() != "unknown" {
		t.Fatalf("out-of-range intent should stringify as unknown")
	}
}
