package markdown_test

import (
	"testing"

	"newssummarizer/internal/markdown"
)

func TestEscapeV2(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Plain text", "Pets are great", "Pets are great"},
		{"Sentence punctuation", "Pets are great. Really!", `Pets are great\. Really\!`},
		{"Links and brackets", "[a](b)", `\[a\]\(b\)`},
		{"Backslash", `a\b`, `a\\b`},
		{"Non-ASCII", "⚠️ Failed: 10-12", `⚠️ Failed: 10\-12`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := markdown.EscapeV2(test.input); got != test.want {
				t.Errorf("EscapeV2(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestBold(t *testing.T) {
	if got, want := markdown.Bold("Summary."), `*Summary\.*`; got != want {
		t.Fatalf("Bold() = %q, want %q", got, want)
	}
}
