package mdtext

import "testing"

func TestExtractPlainText(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", ""},
		{"plain paragraph", "Hello world.\n", "Hello world."},
		{"emphasis and strong", "This is *really* **bold** text.\n", "This is really bold text."},
		{"link", "Click [here](https://example.com) now.\n", "Click here now."},
		{"image alt", "See ![a red fox](fox.png) here.\n", "See a red fox here."},
		{"code span kept", "Use `fmt.Println` to print.\n", "Use fmt.Println to print."},
		{"soft line break", "Hello\nworld.\n", "Hello world."},
		{"inline html dropped", "a <span>b</span> c\n", "a b c"},
		{
			"blocks",
			"# Title\n\nSome *bold* text.\n\n```go\nfmt.Println(\"code\")\n```\n\n- item one\n- item two\n",
			"Title\nSome bold text.\nitem one\nitem two",
		},
		{"indented code dropped", "Intro.\n\n    indented code\n\nOutro.\n", "Intro.\nOutro."},
		{"html block dropped", "<div>\nhidden\n</div>\n\nShown.\n", "Shown."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPlainText([]byte(tt.src)); got != tt.want {
				t.Errorf("ExtractPlainText(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}
