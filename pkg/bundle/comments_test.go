package bundle

import "testing"

func TestStripComments(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "line comment",
			source: "let a = 1; // trailing\nlet b = 2;",
			want:   "let a = 1; \nlet b = 2;",
		},
		{
			name:   "block comment",
			source: "let a = /* gone */ 1;",
			want:   "let a =  1;",
		},
		{
			name:   "multiline block comment",
			source: "a/* x\ny */b",
			want:   "ab",
		},
		{
			name:   "slashes inside string literal survive",
			source: `let url = "http://example.com"; // real comment`,
			want:   `let url = "http://example.com"; `,
		},
		{
			name:   "comment markers inside template literal survive",
			source: "return html`<div>/* not a comment */</div>`;",
			want:   "return html`<div>/* not a comment */</div>`;",
		},
		{
			name:   "escaped quote does not end the literal",
			source: `let s = 'it\'s // fine';`,
			want:   `let s = 'it\'s // fine';`,
		},
		{
			name:   "unterminated block comment swallows the rest",
			source: "a /* no end",
			want:   "a ",
		},
		{
			name:   "division is not a comment",
			source: "let x = a / b / c;",
			want:   "let x = a / b / c;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripComments(tt.source); got != tt.want {
				t.Errorf("StripComments(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}
