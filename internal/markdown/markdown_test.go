package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	got := ToHTML([]byte("**bold**"))
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("expected strong tag, got %q", got)
	}
}

func TestToPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Hello world", want: "Hello world"},
		{name: "emphasis", in: "Hello *brave* **new** world", want: "Hello brave new world"},
		{name: "link", in: "Read the [docs](https://example.com)", want: "Read the docs"},
		{name: "entities", in: "Fish & chips < 5", want: "Fish & chips < 5"},
		{name: "inline code", in: "Run `make`", want: "Run make"},
		{name: "heading", in: "# Title", want: "Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPlainText([]byte(tt.in))
			if got != tt.want {
				t.Errorf("ToPlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripHTMLTags(t *testing.T) {
	got := StripHTMLTags("<p>Hello <em>there</em></p>")
	if got != "Hello there" {
		t.Errorf("expected %q, got %q", "Hello there", got)
	}
}
