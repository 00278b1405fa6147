package lang

import "testing"

func TestDetect(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want Tag
	}{
		{name: "bulgarian greeting", in: "Здравей, как си?", want: Bulgarian},
		{name: "english sentence", in: "search for news about climate change", want: English},
		{name: "single cyrillic char wins", in: "give me articles за спорт", want: Bulgarian},
		{name: "upper case cyrillic", in: "ТЕХНОЛОГИИ", want: Bulgarian},
		{name: "empty", in: "", want: English},
		{name: "digits and punctuation", in: "123 !?", want: English},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.in); got != tt.want {
				t.Fatalf("Detect(%q) got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	if Normalize("bg") != Bulgarian || Normalize(" BG ") != Bulgarian {
		t.Fatalf("bg should normalize to Bulgarian")
	}
	for _, in := range []string{"en", "de", "", "fr"} {
		if Normalize(in) != English {
			t.Fatalf("Normalize(%q) should default to English", in)
		}
	}
}

func TestForFallsBackToEnglish(t *testing.T) {
	t.Parallel()
	if For(Tag("de")).Tag != English {
		t.Fatalf("unknown tag should fall back to the English pack")
	}
	if For(Bulgarian).Tag != Bulgarian {
		t.Fatalf("bulgarian pack missing")
	}
	if len(For(Bulgarian).QueryRules) == 0 || len(For(English).SuffixRules) == 0 {
		t.Fatalf("packs are missing their rewrite rules")
	}
}
