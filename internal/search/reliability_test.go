package search

import "testing"

func TestReliability(t *testing.T) {
	cases := []struct {
		domain string
		want   string
	}{
		{"bbc.com", "high"},
		{"www.bbc.com", "high"},
		{"dnevnik.bg", "high"},
		{"random-blog.example", "medium"},
		{"", "medium"},
	}
	for _, tc := range cases {
		if got := Reliability(tc.domain); got != tc.want {
			t.Fatalf("Reliability(%q) = %q, want %q", tc.domain, got, tc.want)
		}
	}
}
