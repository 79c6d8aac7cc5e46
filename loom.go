// Package loom provides the public API for the loom server-driven UI
// framework.
//
// This is the recommended import for applications:
//
//	import "github.com/loom-ui/loom"
//
// An application builds an App, describes each session's initial UI in
// a session init callback, and serves:
//
//	app, err := loom.New(nil, func(s *loom.Session) error {
//	    body := s.Document()
//	    return body.AppendChild(el.H1(el.Text("Hello")))
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(app.ListenAndServe(context.Background()))
//
// The heavy lifting lives in the subpackages: pkg/state holds the
// server-side element tree and its dirty tracking, pkg/dom the element
// API, pkg/bundle the template extraction from bundler statistics, and
// pkg/push the WebSocket sync layer. This package ties them together.
package loom

import (
	"github.com/loom-ui/loom/pkg/dom"
	"github.com/loom-ui/loom/pkg/push"
)

// Session is a connected client's session; see pkg/push.
type Session = push.Session

// SessionInit builds a fresh session's UI; see pkg/push.
type SessionInit = push.SessionInit

// Element is a handle on one tree node; see pkg/dom.
type Element = dom.Element

// Event is a DOM event delivered to server-side listeners.
type Event = dom.Event
