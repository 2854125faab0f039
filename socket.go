package zmtp

import "github.com/pkg/errors"

// base embeds a *Stream and provides the shared multipart send/recv
// behavior every socket pattern builds on (frame-level reads are
// Stream.RecvFrame), the idiomatic Go
// translation of original_source/src/socket_type/mod.rs's
// default-method trait: Go has no default trait methods, so the
// shared logic lives here once and each concrete socket type embeds
// it, adding only its own type-specific surface.
type base struct {
	stream *Stream
}

// Stream returns the underlying Stream a concrete socket type embeds,
// promoted onto every socket type via base. Satisfies Socket.
func (b *base) Stream() *Stream { return b.stream }

// Socket is the minimal surface every connect-only socket type here
// satisfies: access to its underlying Stream. Pattern-specific
// behavior (Send, Recv, Subscribe, ...) lives on the concrete type
// Connect returns; callers type-assert to it.
type Socket interface {
	Stream() *Stream
}

// sendMultipart emits parts as a sequence of message frames: MORE for
// every part but the last, LAST for the final one, per spec.md §4.5.
// Empty input is rejected (ErrInvalidInput).
func (b *base) sendMultipart(parts [][]byte) error {
	if len(parts) == 0 {
		return wrapf(ErrInvalidInput, "cannot send an empty multipart message")
	}

	for i, part := range parts {
		more := i < len(parts)-1
		frame := shortMessageFrame(part, more)
		if _, err := b.stream.Write(frame); err != nil {
			return errors.Wrapf(err, "zmtp: sending part %d/%d", i+1, len(parts))
		}
	}
	return nil
}

// recvMultipart reads frames until a LAST message frame is seen,
// returning the accumulated payload bodies in order. A command frame
// encountered mid-stream is a protocol violation, matching PULL's
// behavior in spec.md §4.5 (the shared default every pattern except
// SUB uses as-is).
func (b *base) recvMultipart() ([][]byte, error) {
	var parts [][]byte

	for {
		fb, err := b.stream.RecvFrame()
		if err != nil {
			return nil, err
		}

		body, isLast, ok := fb.AsFrame().AsMessage()
		if !ok {
			cmd, _ := fb.AsFrame().AsCommand()
			name, _ := cmd.Name()
			return nil, wrapf(ErrProtocolViolation, "unexpected command frame %q mid-stream", name)
		}

		parts = append(parts, body)
		if isLast {
			break
		}
	}

	return parts, nil
}
