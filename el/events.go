// Event helpers. Each registers a server-side listener; the client
// forwards events of a type while at least one listener exists for it.
package el

import "github.com/loom-ui/loom/pkg/dom"

// On registers a listener for an arbitrary DOM event type.
func On(eventType string, fn dom.EventListener) Arg {
	return argFunc(func(e dom.Element) {
		if _, err := e.AddEventListener(eventType, fn); err != nil {
			panic(err)
		}
	})
}

func OnClick(fn dom.EventListener) Arg {
	return On("click", fn)
}
func OnDblClick(fn dom.EventListener) Arg {
	return On("dblclick", fn)
}
func OnMouseDown(fn dom.EventListener) Arg {
	return On("mousedown", fn)
}
func OnMouseUp(fn dom.EventListener) Arg {
	return On("mouseup", fn)
}
func OnMouseEnter(fn dom.EventListener) Arg {
	return On("mouseenter", fn)
}
func OnMouseLeave(fn dom.EventListener) Arg {
	return On("mouseleave", fn)
}
func OnContextMenu(fn dom.EventListener) Arg {
	return On("contextmenu", fn)
}
func OnKeyDown(fn dom.EventListener) Arg {
	return On("keydown", fn)
}
func OnKeyUp(fn dom.EventListener) Arg {
	return On("keyup", fn)
}
func OnInput(fn dom.EventListener) Arg {
	return On("input", fn)
}
func OnChange(fn dom.EventListener) Arg {
	return On("change", fn)
}
func OnSubmit(fn dom.EventListener) Arg {
	return On("submit", fn)
}
func OnFocus(fn dom.EventListener) Arg {
	return On("focus", fn)
}
func OnBlur(fn dom.EventListener) Arg {
	return On("blur", fn)
}
func OnSelect(fn dom.EventListener) Arg {
	return On("select", fn)
}
func OnReset(fn dom.EventListener) Arg {
	return On("reset", fn)
}
func OnScroll(fn dom.EventListener) Arg {
	return On("scroll", fn)
}
func OnDragStart(fn dom.EventListener) Arg {
	return On("dragstart", fn)
}
func OnDragEnd(fn dom.EventListener) Arg {
	return On("dragend", fn)
}
func OnDragOver(fn dom.EventListener) Arg {
	return On("dragover", fn)
}
func OnDrop(fn dom.EventListener) Arg {
	return On("drop", fn)
}
func OnTouchStart(fn dom.EventListener) Arg {
	return On("touchstart", fn)
}
func OnTouchMove(fn dom.EventListener) Arg {
	return On("touchmove", fn)
}
func OnTouchEnd(fn dom.EventListener) Arg {
	return On("touchend", fn)
}
func OnPointerDown(fn dom.EventListener) Arg {
	return On("pointerdown", fn)
}
func OnPointerUp(fn dom.EventListener) Arg {
	return On("pointerup", fn)
}
func OnPlay(fn dom.EventListener) Arg {
	return On("play", fn)
}
func OnPause(fn dom.EventListener) Arg {
	return On("pause", fn)
}
func OnEnded(fn dom.EventListener) Arg {
	return On("ended", fn)
}
func OnError(fn dom.EventListener) Arg {
	return On("error", fn)
}
func OnLoad(fn dom.EventListener) Arg {
	return On("load", fn)
}
func OnToggle(fn dom.EventListener) Arg {
	return On("toggle", fn)
}
