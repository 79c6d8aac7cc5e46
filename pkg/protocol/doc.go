// Package protocol defines the wire format between the loom server and
// the thin client: a small binary frame envelope around JSON payloads.
//
// Every message is one frame. The frame header carries the type, flags
// and payload length; the payload is a JSON document whose shape depends
// on the frame type. Server-to-client change batches mirror the change
// forms produced by the state tree, so the client can apply them without
// knowing anything about the server-side model.
package protocol
