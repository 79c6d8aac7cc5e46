// HTML element constructors. Each one builds a detached element with
// the corresponding tag; see New for the accepted argument types.
package el

import "github.com/loom-ui/loom/pkg/dom"

func Header(args ...any) dom.Element {
	return New("header", args...)
}
func Footer(args ...any) dom.Element {
	return New("footer", args...)
}
func Main(args ...any) dom.Element {
	return New("main", args...)
}
func Nav(args ...any) dom.Element {
	return New("nav", args...)
}
func Section(args ...any) dom.Element {
	return New("section", args...)
}
func Article(args ...any) dom.Element {
	return New("article", args...)
}
func Aside(args ...any) dom.Element {
	return New("aside", args...)
}
func Address(args ...any) dom.Element {
	return New("address", args...)
}
func H1(args ...any) dom.Element {
	return New("h1", args...)
}
func H2(args ...any) dom.Element {
	return New("h2", args...)
}
func H3(args ...any) dom.Element {
	return New("h3", args...)
}
func H4(args ...any) dom.Element {
	return New("h4", args...)
}
func H5(args ...any) dom.Element {
	return New("h5", args...)
}
func H6(args ...any) dom.Element {
	return New("h6", args...)
}
func Div(args ...any) dom.Element {
	return New("div", args...)
}
func P(args ...any) dom.Element {
	return New("p", args...)
}
func Span(args ...any) dom.Element {
	return New("span", args...)
}
func Pre(args ...any) dom.Element {
	return New("pre", args...)
}
func Blockquote(args ...any) dom.Element {
	return New("blockquote", args...)
}
func Ul(args ...any) dom.Element {
	return New("ul", args...)
}
func Ol(args ...any) dom.Element {
	return New("ol", args...)
}
func Li(args ...any) dom.Element {
	return New("li", args...)
}
func Dl(args ...any) dom.Element {
	return New("dl", args...)
}
func Dt(args ...any) dom.Element {
	return New("dt", args...)
}
func Dd(args ...any) dom.Element {
	return New("dd", args...)
}
func Hr(args ...any) dom.Element {
	return New("hr", args...)
}
func Figure(args ...any) dom.Element {
	return New("figure", args...)
}
func Figcaption(args ...any) dom.Element {
	return New("figcaption", args...)
}
func A(args ...any) dom.Element {
	return New("a", args...)
}
func Strong(args ...any) dom.Element {
	return New("strong", args...)
}
func Em(args ...any) dom.Element {
	return New("em", args...)
}
func B(args ...any) dom.Element {
	return New("b", args...)
}
func I(args ...any) dom.Element {
	return New("i", args...)
}
func U(args ...any) dom.Element {
	return New("u", args...)
}
func S(args ...any) dom.Element {
	return New("s", args...)
}
func Small(args ...any) dom.Element {
	return New("small", args...)
}
func Mark(args ...any) dom.Element {
	return New("mark", args...)
}
func Sub(args ...any) dom.Element {
	return New("sub", args...)
}
func Sup(args ...any) dom.Element {
	return New("sup", args...)
}
func Code(args ...any) dom.Element {
	return New("code", args...)
}
func Kbd(args ...any) dom.Element {
	return New("kbd", args...)
}
func Samp(args ...any) dom.Element {
	return New("samp", args...)
}
func Abbr(args ...any) dom.Element {
	return New("abbr", args...)
}
func Time_(args ...any) dom.Element {
	return New("time", args...)
}
func Cite(args ...any) dom.Element {
	return New("cite", args...)
}
func Q(args ...any) dom.Element {
	return New("q", args...)
}
func Br(args ...any) dom.Element {
	return New("br", args...)
}
func Wbr(args ...any) dom.Element {
	return New("wbr", args...)
}
func Form(args ...any) dom.Element {
	return New("form", args...)
}
func Input(args ...any) dom.Element {
	return New("input", args...)
}
func Textarea(args ...any) dom.Element {
	return New("textarea", args...)
}
func Select(args ...any) dom.Element {
	return New("select", args...)
}
func Option(args ...any) dom.Element {
	return New("option", args...)
}
func Optgroup(args ...any) dom.Element {
	return New("optgroup", args...)
}
func Button(args ...any) dom.Element {
	return New("button", args...)
}
func Label(args ...any) dom.Element {
	return New("label", args...)
}
func Fieldset(args ...any) dom.Element {
	return New("fieldset", args...)
}
func Legend(args ...any) dom.Element {
	return New("legend", args...)
}
func Datalist(args ...any) dom.Element {
	return New("datalist", args...)
}
func Output(args ...any) dom.Element {
	return New("output", args...)
}
func Progress(args ...any) dom.Element {
	return New("progress", args...)
}
func Meter(args ...any) dom.Element {
	return New("meter", args...)
}
func Table(args ...any) dom.Element {
	return New("table", args...)
}
func Thead(args ...any) dom.Element {
	return New("thead", args...)
}
func Tbody(args ...any) dom.Element {
	return New("tbody", args...)
}
func Tfoot(args ...any) dom.Element {
	return New("tfoot", args...)
}
func Tr(args ...any) dom.Element {
	return New("tr", args...)
}
func Th(args ...any) dom.Element {
	return New("th", args...)
}
func Td(args ...any) dom.Element {
	return New("td", args...)
}
func Caption(args ...any) dom.Element {
	return New("caption", args...)
}
func Colgroup(args ...any) dom.Element {
	return New("colgroup", args...)
}
func Col(args ...any) dom.Element {
	return New("col", args...)
}
func Img(args ...any) dom.Element {
	return New("img", args...)
}
func Picture(args ...any) dom.Element {
	return New("picture", args...)
}
func Source(args ...any) dom.Element {
	return New("source", args...)
}
func Video(args ...any) dom.Element {
	return New("video", args...)
}
func Audio(args ...any) dom.Element {
	return New("audio", args...)
}
func Track(args ...any) dom.Element {
	return New("track", args...)
}
func Iframe(args ...any) dom.Element {
	return New("iframe", args...)
}
func Canvas(args ...any) dom.Element {
	return New("canvas", args...)
}
func Details(args ...any) dom.Element {
	return New("details", args...)
}
func Summary(args ...any) dom.Element {
	return New("summary", args...)
}
func Dialog(args ...any) dom.Element {
	return New("dialog", args...)
}
func Menu(args ...any) dom.Element {
	return New("menu", args...)
}
func Slot(args ...any) dom.Element {
	return New("slot", args...)
}

// CustomElement builds an element with an arbitrary tag, typically a
// web component name such as "my-widget".
func CustomElement(tag string, args ...any) dom.Element {
	return New(tag, args...)
}
