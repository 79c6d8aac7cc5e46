// Attribute and property helpers. Each returns an Arg; applying one
// with an invalid name panics, so the static helpers below never do.
package el

import (
	"strconv"

	"github.com/loom-ui/loom/pkg/dom"
)

// Attr sets an arbitrary attribute.
func Attr(name, value string) Arg {
	return argFunc(func(e dom.Element) {
		if err := e.SetAttribute(name, value); err != nil {
			panic(err)
		}
	})
}

// BoolAttr sets a boolean attribute with an empty value, the form the
// client renders as a bare attribute.
func BoolAttr(name string) Arg {
	return Attr(name, "")
}

// Prop sets an element property.
func Prop(name string, value any) Arg {
	return argFunc(func(e dom.Element) {
		if err := e.SetProperty(name, value); err != nil {
			panic(err)
		}
	})
}

// Class adds class tokens to the element's class list.
func Class(classes ...string) Arg {
	return argFunc(func(e dom.Element) {
		list, err := e.ClassList()
		if err != nil {
			panic(err)
		}
		for _, class := range classes {
			if _, err := list.Add(class); err != nil {
				panic(err)
			}
		}
	})
}

// ClassIf adds the class only when condition holds.
func ClassIf(condition bool, class string) Arg {
	if !condition {
		return argFunc(func(dom.Element) {})
	}
	return Class(class)
}

// AttrIf applies the argument only when condition holds.
func AttrIf(condition bool, a Arg) Arg {
	if !condition {
		return argFunc(func(dom.Element) {})
	}
	return a
}

func ID(id string) Arg {
	return Attr("id", id)
}
func StyleAttr(style string) Arg {
	return Attr("style", style)
}
func Data(key, value string) Arg {
	return Attr("data-"+key, value)
}
func Role(role string) Arg {
	return Attr("role", role)
}
func TitleAttr(title string) Arg {
	return Attr("title", title)
}
func Lang(lang string) Arg {
	return Attr("lang", lang)
}
func Dir(dir string) Arg {
	return Attr("dir", dir)
}
func TabIndex(index int) Arg {
	return Attr("tabindex", strconv.Itoa(index))
}
func Hidden() Arg {
	return BoolAttr("hidden")
}

func AriaLabel(label string) Arg {
	return Attr("aria-label", label)
}
func AriaHidden(hidden bool) Arg {
	return Attr("aria-hidden", strconv.FormatBool(hidden))
}
func AriaExpanded(expanded bool) Arg {
	return Attr("aria-expanded", strconv.FormatBool(expanded))
}
func AriaDescribedBy(id string) Arg {
	return Attr("aria-describedby", id)
}
func AriaLabelledBy(id string) Arg {
	return Attr("aria-labelledby", id)
}
func AriaLive(mode string) Arg {
	return Attr("aria-live", mode)
}
func AriaControls(id string) Arg {
	return Attr("aria-controls", id)
}
func AriaCurrent(value string) Arg {
	return Attr("aria-current", value)
}
func AriaDisabled(disabled bool) Arg {
	return Attr("aria-disabled", strconv.FormatBool(disabled))
}
func AriaSelected(selected bool) Arg {
	return Attr("aria-selected", strconv.FormatBool(selected))
}

func Href(url string) Arg {
	return Attr("href", url)
}
func Target(target string) Arg {
	return Attr("target", target)
}
func Rel(rel string) Arg {
	return Attr("rel", rel)
}
func Download(filename ...string) Arg {
	if len(filename) > 0 {
		return Attr("download", filename[0])
	}
	return BoolAttr("download")
}

func Name(name string) Arg {
	return Attr("name", name)
}
func Value(value string) Arg {
	return Attr("value", value)
}
func Type(t string) Arg {
	return Attr("type", t)
}
func Placeholder(text string) Arg {
	return Attr("placeholder", text)
}
func Disabled() Arg {
	return BoolAttr("disabled")
}
func Readonly() Arg {
	return BoolAttr("readonly")
}
func Required() Arg {
	return BoolAttr("required")
}
func Checked() Arg {
	return BoolAttr("checked")
}
func Selected() Arg {
	return BoolAttr("selected")
}
func Multiple() Arg {
	return BoolAttr("multiple")
}
func Autofocus() Arg {
	return BoolAttr("autofocus")
}
func Autocomplete(value string) Arg {
	return Attr("autocomplete", value)
}
func Pattern(pattern string) Arg {
	return Attr("pattern", pattern)
}
func MinLength(n int) Arg {
	return Attr("minlength", strconv.Itoa(n))
}
func MaxLength(n int) Arg {
	return Attr("maxlength", strconv.Itoa(n))
}
func Min(value string) Arg {
	return Attr("min", value)
}
func Max(value string) Arg {
	return Attr("max", value)
}
func Step(value string) Arg {
	return Attr("step", value)
}
func Rows(n int) Arg {
	return Attr("rows", strconv.Itoa(n))
}
func Cols(n int) Arg {
	return Attr("cols", strconv.Itoa(n))
}
func Action(url string) Arg {
	return Attr("action", url)
}
func Method(method string) Arg {
	return Attr("method", method)
}
func Enctype(enctype string) Arg {
	return Attr("enctype", enctype)
}
func Novalidate() Arg {
	return BoolAttr("novalidate")
}
func For(id string) Arg {
	return Attr("for", id)
}

func Src(url string) Arg {
	return Attr("src", url)
}
func Alt(text string) Arg {
	return Attr("alt", text)
}
func Width(w int) Arg {
	return Attr("width", strconv.Itoa(w))
}
func Height(h int) Arg {
	return Attr("height", strconv.Itoa(h))
}
func Loading(mode string) Arg {
	return Attr("loading", mode)
}
func Controls() Arg {
	return BoolAttr("controls")
}
func Autoplay() Arg {
	return BoolAttr("autoplay")
}
func Loop() Arg {
	return BoolAttr("loop")
}
func Preload(mode string) Arg {
	return Attr("preload", mode)
}
func Poster(url string) Arg {
	return Attr("poster", url)
}

func Colspan(n int) Arg {
	return Attr("colspan", strconv.Itoa(n))
}
func Rowspan(n int) Arg {
	return Attr("rowspan", strconv.Itoa(n))
}
func Scope(scope string) Arg {
	return Attr("scope", scope)
}
func Open() Arg {
	return BoolAttr("open")
}
