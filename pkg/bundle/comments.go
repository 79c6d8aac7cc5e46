// Package bundle recovers component template sources from bundler
// statistics output. A bundler's stats JSON carries every bundled
// module's name and source text; this package walks it to find a
// component's source, extracts the template markup embedded in the
// component class, and parses it into an HTML fragment the dom layer can
// materialize.
package bundle

// stripState tracks what the comment stripper is inside of.
type stripState int

const (
	stripCode stripState = iota
	stripLineComment
	stripBlockComment
	stripSingleQuote
	stripDoubleQuote
	stripBacktick
)

// StripComments removes line and block comments from JavaScript source
// while leaving string and template literals intact. Escaped characters
// inside literals do not terminate them; an unterminated block comment
// swallows the rest of the input.
func StripComments(source string) string {
	out := make([]byte, 0, len(source))
	state := stripCode

	for i := 0; i < len(source); i++ {
		c := source[i]
		switch state {
		case stripCode:
			if c == '/' && i+1 < len(source) {
				switch source[i+1] {
				case '/':
					state = stripLineComment
					i++
					continue
				case '*':
					state = stripBlockComment
					i++
					continue
				}
			}
			switch c {
			case '\'':
				state = stripSingleQuote
			case '"':
				state = stripDoubleQuote
			case '`':
				state = stripBacktick
			}
			out = append(out, c)
		case stripLineComment:
			if c == '\n' {
				state = stripCode
				out = append(out, c)
			}
		case stripBlockComment:
			if c == '*' && i+1 < len(source) && source[i+1] == '/' {
				state = stripCode
				i++
			}
		case stripSingleQuote, stripDoubleQuote, stripBacktick:
			if c == '\\' && i+1 < len(source) {
				out = append(out, c, source[i+1])
				i++
				continue
			}
			if (state == stripSingleQuote && c == '\'') ||
				(state == stripDoubleQuote && c == '"') ||
				(state == stripBacktick && c == '`') {
				state = stripCode
			}
			out = append(out, c)
		}
	}
	return string(out)
}
