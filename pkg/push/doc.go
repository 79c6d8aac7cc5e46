// Package push streams state tree changes to connected clients over
// WebSocket and feeds client DOM events back into the tree.
//
// Each connection owns one Session with its own state tree. The session
// serializes all tree access: events dispatch one at a time, and every
// dispatch ends with a flush that drains the tree's pending changes into
// change frames. Sessions can optionally resume from a snapshot store
// after a disconnect, keeping node ids stable for the client.
package push
