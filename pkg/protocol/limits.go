package protocol

import "errors"

// Decode limits. Payload size is already capped by the frame header;
// these guard against pathological nesting inside otherwise small
// payloads.
const (
	// MaxEventDataDepth limits the nesting depth of event data. Real
	// event payloads are flat or nearly flat; 64 levels is far beyond
	// anything a browser event produces.
	MaxEventDataDepth = 64
)

var (
	// ErrMissingEventType is returned for an event without a type.
	ErrMissingEventType = errors.New("protocol: event has no type")

	// ErrMaxDepthExceeded is returned when decoded event data nests
	// deeper than MaxEventDataDepth.
	ErrMaxDepthExceeded = errors.New("protocol: max depth exceeded")
)

// checkDataDepth walks decoded event data and rejects structures nested
// deeper than MaxEventDataDepth.
func checkDataDepth(data map[string]any) error {
	for _, v := range data {
		if err := valueDepth(v, 1); err != nil {
			return err
		}
	}
	return nil
}

func valueDepth(v any, depth int) error {
	if depth > MaxEventDataDepth {
		return ErrMaxDepthExceeded
	}
	switch v := v.(type) {
	case map[string]any:
		for _, nested := range v {
			if err := valueDepth(nested, depth+1); err != nil {
				return err
			}
		}
	case []any:
		for _, nested := range v {
			if err := valueDepth(nested, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
