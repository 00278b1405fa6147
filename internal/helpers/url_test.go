package helpers

import "testing"

func TestDomain(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain https url", in: "https://www.bbc.com/news/world-123", want: "www.bbc.com"},
		{name: "upper case host", in: "https://Dnevnik.BG/article/1", want: "dnevnik.bg"},
		{name: "strips port", in: "http://localhost:3000/article/5", want: "localhost"},
		{name: "schemeless", in: "mediapool.bg/story", want: "mediapool.bg"},
		{name: "double slash prefix", in: "//nova.bg/video", want: "nova.bg"},
		{name: "unparseable falls back", in: "not a url", want: "not a url"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := Domain(tt.in); got != tt.want {
				t.Fatalf("Domain(%q) got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	if got := Truncate("short", 60); got != "short" {
		t.Fatalf("expected unchanged text, got %q", got)
	}
	got := Truncate("a very long headline that keeps going", 10)
	if got != "a very ..." {
		t.Fatalf("Truncate got %q", got)
	}
	// Cyrillic input must not be cut mid-rune.
	bg := Truncate("Здравей, как си днес?", 10)
	if []rune(bg)[0] != 'З' || len([]rune(bg)) != 10 {
		t.Fatalf("Truncate mangled cyrillic input: %q", bg)
	}
}
