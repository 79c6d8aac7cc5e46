package bundle

import (
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Template declaration shapes recognized in component source. RE2 has
// no backreferences, so each shape compiles to one pattern per quote
// delimiter. The capture is greedy on purpose: it runs to the LAST
// `<delimiter>;` terminator, so a stray delimiter inside the template
// body (a backtick in embedded CSS, say) stays part of the capture
// instead of truncating it.
var (
	polymerTemplatePatterns = []*regexp.Regexp{
		regexp.MustCompile("(?s)get\\s*template\\(\\)\\s*\\{\\s*return\\s*html`(.*)`;\\s*\\}"),
		regexp.MustCompile(`(?s)get\s*template\(\)\s*\{\s*return\s*html'(.*)';\s*\}`),
		regexp.MustCompile(`(?s)get\s*template\(\)\s*\{\s*return\s*html"(.*)";\s*\}`),
	}

	litTemplatePatterns = []*regexp.Regexp{
		regexp.MustCompile("(?s)render\\(\\)\\s*\\{\\s*return\\s*html`(.*)`;\\s*\\}"),
		regexp.MustCompile(`(?s)render\(\)\s*\{\s*return\s*html'(.*)';\s*\}`),
		regexp.MustCompile(`(?s)render\(\)\s*\{\s*return\s*html"(.*)";\s*\}`),
	}

	// Polymer 2 components assign the whole dom-module markup to
	// innerHTML instead of declaring a template getter.
	domModulePatterns = []*regexp.Regexp{
		regexp.MustCompile("(?s)innerHTML\\s*=\\s*`(\\s*<dom-module\\s+.*)`;"),
		regexp.MustCompile(`(?s)innerHTML\s*=\s*'(\s*<dom-module\s+.*)';`),
		regexp.MustCompile(`(?s)innerHTML\s*=\s*"(\s*<dom-module\s+.*)";`),
	}
)

var templateLogger = slog.Default().With("component", "bundle")

// TemplateElement extracts the template markup from component source and
// returns it parsed as a template element. The Polymer 3 declaration
// (`static get template()`) is tried first, then the Polymer 2
// dom-module fallback. When neither matches, the result is an EMPTY
// template element with a warning log, never nil: callers always get a
// usable element. Lit components go through LitTemplateElement instead,
// which reports absence explicitly.
func TemplateElement(name, source string) *html.Node {
	source = StripComments(source)

	for _, pattern := range polymerTemplatePatterns {
		if m := pattern.FindStringSubmatch(source); m != nil {
			templateLogger.Debug("matched polymer template", "file", name, "bytes", len(m[1]))
			return templateFromMarkup(m[1])
		}
	}

	// Polymer 2: scan every innerHTML assignment for the first one whose
	// markup holds a template inside a dom-module.
	for _, pattern := range domModulePatterns {
		for _, m := range pattern.FindAllStringSubmatch(source, -1) {
			fragment := parseFragment(m[1])
			if tmpl := findDomModuleTemplate(fragment); tmpl != nil {
				templateLogger.Debug("matched dom-module template", "file", name, "bytes", len(m[1]))
				return tmpl
			}
		}
	}

	templateLogger.Warn("no template found, using an empty element", "file", name)
	return emptyTemplate()
}

// LitTemplateElement extracts a Lit `render()` template from component
// source. Unlike TemplateElement there is no synthesized fallback: when
// the pattern does not match, the second return is false and the caller
// must branch.
func LitTemplateElement(name, source string) (*html.Node, bool) {
	source = StripComments(source)

	for _, pattern := range litTemplatePatterns {
		if m := pattern.FindStringSubmatch(source); m != nil {
			templateLogger.Debug("matched lit template", "file", name, "bytes", len(m[1]))
			return templateFromMarkup(m[1]), true
		}
	}

	templateLogger.Warn("no lit template found", "file", name)
	return nil, false
}

// templateFromMarkup parses markup as a body fragment and wraps its
// nodes, in document order, under a fresh template element.
func templateFromMarkup(markup string) *html.Node {
	tmpl := emptyTemplate()
	for _, n := range parseFragment(markup) {
		n.Parent = nil
		n.PrevSibling = nil
		n.NextSibling = nil
		tmpl.AppendChild(n)
	}
	return tmpl
}

// parseFragment parses markup in body context and returns the top-level
// nodes. Parse errors degrade to an empty fragment; bundler output is
// not trusted to be well formed.
func parseFragment(markup string) []*html.Node {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		templateLogger.Warn("template markup did not parse", "error", err)
		return nil
	}
	return nodes
}

// findDomModuleTemplate looks for a template element nested under a
// dom-module element anywhere in the fragment.
func findDomModuleTemplate(nodes []*html.Node) *html.Node {
	for _, n := range nodes {
		if n.Type == html.ElementNode && n.Data == "dom-module" {
			if tmpl := findElement(n, "template"); tmpl != nil {
				detachNode(tmpl)
				return tmpl
			}
		}
		var children []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			children = append(children, c)
		}
		if tmpl := findDomModuleTemplate(children); tmpl != nil {
			return tmpl
		}
	}
	return nil
}

// findElement depth-first searches a subtree for an element by tag.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// detachNode unlinks a node from its parsed document so it can be
// handed out as a standalone fragment root.
func detachNode(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	n.PrevSibling = nil
	n.NextSibling = nil
}

func emptyTemplate() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "template",
		DataAtom: atom.Template,
	}
}
