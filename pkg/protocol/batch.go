package protocol

import "fmt"

// EncodeChangeFrames encodes a change batch into one or more Changes
// frames, each within MaxPayloadSize. A batch that does not fit in one
// frame is split; every frame repeats the batch sequence number and the
// last one carries FlagFinal. A single change too large for a frame on
// its own is an error (an attribute or property value of tens of
// kilobytes; the application should not put those in the tree).
func EncodeChangeFrames(seq uint64, changes []Change) ([]*Frame, error) {
	var frames []*Frame
	if err := appendChangeFrames(&frames, seq, changes); err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		frames = append(frames, NewFrame(FrameChanges, EncodeChangeBatch(&ChangeBatch{Seq: seq})))
	}
	frames[len(frames)-1].Flags |= FlagFinal
	return frames, nil
}

func appendChangeFrames(frames *[]*Frame, seq uint64, changes []Change) error {
	if len(changes) == 0 {
		return nil
	}
	payload := EncodeChangeBatch(&ChangeBatch{Seq: seq, Changes: changes})
	if len(payload) <= MaxPayloadSize {
		*frames = append(*frames, NewFrame(FrameChanges, payload))
		return nil
	}
	if len(changes) == 1 {
		return fmt.Errorf("%w: single change of %d bytes", ErrFrameTooLarge, len(payload))
	}
	mid := len(changes) / 2
	if err := appendChangeFrames(frames, seq, changes[:mid]); err != nil {
		return err
	}
	return appendChangeFrames(frames, seq, changes[mid:])
}
