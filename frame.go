package zmtp

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Frame flag bits, per the ZMTP v3 wire format.
const (
	flagMore    byte = 0x01 // another message frame follows
	flagLong    byte = 0x02 // length prefix is 8 bytes instead of 1
	flagCommand byte = 0x04 // command frame, not a message payload
)

// Valid frame tags. Every other byte value fails classification.
const (
	tagMessageShortLast byte = 0x00
	tagMessageShortMore byte = 0x01
	tagMessageLongLast  byte = 0x02
	tagMessageLongMore  byte = 0x03
	tagCommandShort     byte = 0x04
	tagCommandLong      byte = 0x06
)

// FrameKind classifies a frame's role on the wire.
type FrameKind int

const (
	// KindCommand marks a protocol-level frame such as READY or a
	// ZMTP 3.1 SUBSCRIBE command. Legacy subscribe frames are message
	// frames, not commands.
	KindCommand FrameKind = iota
	// KindMessagePart marks a non-terminal part of a multipart message.
	KindMessagePart
	// KindMessageTail marks the final frame of a multipart message, or
	// the sole frame of a single-part message.
	KindMessageTail
)

func (k FrameKind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindMessagePart:
		return "message-part"
	case KindMessageTail:
		return "message-tail"
	default:
		return "unknown"
	}
}

// Frame is a borrowed view over a single well-formed ZMTP frame: tag
// byte, length prefix, and body. It never outlives the byte slice it
// wraps.
type Frame struct {
	bytes []byte
}

// NewFrame wraps bytes as a Frame view without validating it; Kind
// reports an invalid tag byte as ErrMalformedFrame.
func NewFrame(bytes []byte) Frame {
	return Frame{bytes: bytes}
}

// Bytes returns the raw wire bytes (tag + length + body) backing the frame.
func (f Frame) Bytes() []byte { return f.bytes }

// headerLen returns the offset of the frame's body given its tag, or
// an error if the tag is not one of the six valid values.
func headerLen(tag byte) (int, error) {
	switch tag {
	case tagMessageShortLast, tagMessageShortMore, tagCommandShort:
		return 2, nil
	case tagMessageLongLast, tagMessageLongMore, tagCommandLong:
		return 9, nil
	default:
		return 0, errors.Wrapf(ErrMalformedFrame, "invalid tag byte 0x%02x", tag)
	}
}

// isLong reports whether tag uses an 8-byte length prefix.
func isLong(tag byte) bool {
	return tag&flagLong != 0
}

// Size returns the frame's declared body length, decoded from the 1-
// or 8-byte length prefix.
func (f Frame) Size() (int, error) {
	if len(f.bytes) < 2 {
		return 0, errors.Wrapf(ErrMalformedFrame, "frame too short to contain a length prefix")
	}
	tag := f.bytes[0]
	if isLong(tag) {
		if len(f.bytes) < 9 {
			return 0, errors.Wrapf(ErrMalformedFrame, "truncated long length prefix")
		}
		return int(binary.BigEndian.Uint64(f.bytes[1:9])), nil
	}
	return int(f.bytes[1]), nil
}

// Kind classifies the frame by inspecting its tag byte.
func (f Frame) Kind() (FrameKind, error) {
	if len(f.bytes) == 0 {
		return 0, errors.Wrapf(ErrMalformedFrame, "empty frame")
	}
	tag := f.bytes[0]
	if _, err := headerLen(tag); err != nil {
		return 0, err
	}
	if tag&flagCommand != 0 {
		return KindCommand, nil
	}
	if tag&flagMore != 0 {
		return KindMessagePart, nil
	}
	return KindMessageTail, nil
}

// Body returns the frame's payload, i.e. everything after the length prefix.
func (f Frame) Body() ([]byte, error) {
	if len(f.bytes) == 0 {
		return nil, errors.Wrapf(ErrMalformedFrame, "empty frame")
	}
	n, err := headerLen(f.bytes[0])
	if err != nil {
		return nil, err
	}
	if len(f.bytes) < n {
		return nil, errors.Wrapf(ErrMalformedFrame, "frame shorter than its own header")
	}
	return f.bytes[n:], nil
}

// AsMessage returns (body, isLast) if the frame is a message frame
// (part or tail); ok is false for command frames or malformed input.
func (f Frame) AsMessage() (body []byte, isLast bool, ok bool) {
	kind, err := f.Kind()
	if err != nil || kind == KindCommand {
		return nil, false, false
	}
	body, err = f.Body()
	if err != nil {
		return nil, false, false
	}
	return body, kind == KindMessageTail, true
}

// AsCommand returns a Command view if the frame is a command frame.
func (f Frame) AsCommand() (Command, bool) {
	kind, err := f.Kind()
	if err != nil || kind != KindCommand {
		return Command{}, false
	}
	return Command{frame: f}, true
}

// FrameBuf is an owned, growable buffer holding exactly one
// well-formed frame. It exposes a borrowed Frame view via AsFrame.
type FrameBuf struct {
	bytes []byte
}

// NewFrameBuf wraps an already-assembled frame's raw bytes.
func NewFrameBuf(bytes []byte) FrameBuf {
	return FrameBuf{bytes: bytes}
}

// Bytes returns the owned backing buffer.
func (b FrameBuf) Bytes() []byte { return b.bytes }

// AsFrame returns a borrowed view over the owned buffer.
func (b FrameBuf) AsFrame() Frame { return Frame{bytes: b.bytes} }

// shortMessageFrame builds the wire bytes for a single message frame
// (not a command), choosing the short or long tag based on len(body).
func shortMessageFrame(body []byte, more bool) []byte {
	var tag byte
	var out []byte

	if len(body) <= 255 {
		if more {
			tag = tagMessageShortMore
		} else {
			tag = tagMessageShortLast
		}
		out = make([]byte, 2, 2+len(body))
		out[0] = tag
		out[1] = byte(len(body))
	} else {
		if more {
			tag = tagMessageLongMore
		} else {
			tag = tagMessageLongLast
		}
		out = make([]byte, 9, 9+len(body))
		out[0] = tag
		binary.BigEndian.PutUint64(out[1:9], uint64(len(body)))
	}

	return append(out, body...)
}

// ShortCommand builds a FrameBuf encoding a short command frame: name
// followed by the property list encoding from spec.md §4.1. Property
// names longer than 255 bytes or values longer than 2^32-1 bytes are
// rejected. The caller must ensure the total body fits within 255
// bytes; LongCommand covers larger bodies.
func ShortCommand(name string, properties []Property) (FrameBuf, error) {
	if len(name) > 255 {
		return FrameBuf{}, errors.Wrapf(ErrInvalidInput, "command name %q exceeds 255 bytes", name)
	}

	bytes := []byte{tagCommandShort, 0x00, byte(len(name))}
	bytes = append(bytes, name...)

	for _, p := range properties {
		if len(p.Name) > 255 {
			return FrameBuf{}, errors.Wrapf(ErrInvalidInput, "property name %q exceeds 255 bytes", p.Name)
		}
		if uint64(len(p.Value)) > 0xFFFFFFFF {
			return FrameBuf{}, errors.Wrapf(ErrInvalidInput, "property %q value exceeds 2^32-1 bytes", p.Name)
		}
		bytes = append(bytes, byte(len(p.Name)))
		bytes = append(bytes, p.Name...)

		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(p.Value)))
		bytes = append(bytes, lenBuf[:]...)
		bytes = append(bytes, p.Value...)
	}

	bodyLen := len(bytes) - 2
	if bodyLen > 255 {
		return FrameBuf{}, errors.Wrapf(ErrInvalidInput, "command %q body of %d bytes requires a long command frame", name, bodyLen)
	}
	bytes[1] = byte(bodyLen)

	return FrameBuf{bytes: bytes}, nil
}

// readFrame performs the frame-level receive described in spec.md
// §4.4: read the 1-byte tag, then 1 or 8 more bytes for the length,
// then exactly length bytes for the body. The returned FrameBuf holds
// the full raw frame (tag + length + body) so callers can reclassify
// it without a re-read. A short read anywhere in this sequence is
// reported as ErrUnexpectedEOF.
func readFrame(r io.Reader) (FrameBuf, error) {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return FrameBuf{}, wrapUnexpectedEOF(err, "reading frame tag")
	}

	lenWidth, err := headerLen(tag[0])
	if err != nil {
		return FrameBuf{}, err
	}
	lenWidth-- // headerLen includes the tag byte itself

	lenBytes := make([]byte, lenWidth)
	if _, err := io.ReadFull(r, lenBytes); err != nil {
		return FrameBuf{}, wrapUnexpectedEOF(err, "reading frame length")
	}

	var size uint64
	if lenWidth == 1 {
		size = uint64(lenBytes[0])
	} else {
		size = binary.BigEndian.Uint64(lenBytes)
	}

	body := make([]byte, size)
	if size > 0 {
		if _, err := io.ReadFull(r, body); err != nil {
			return FrameBuf{}, wrapUnexpectedEOF(err, "reading frame body")
		}
	}

	raw := make([]byte, 0, 1+lenWidth+int(size))
	raw = append(raw, tag[0])
	raw = append(raw, lenBytes...)
	raw = append(raw, body...)

	return FrameBuf{bytes: raw}, nil
}

func wrapUnexpectedEOF(err error, context string) error {
	if cause := errors.Cause(err); cause == io.EOF || cause == io.ErrUnexpectedEOF {
		return wrapf(ErrUnexpectedEOF, context)
	}
	return errors.Wrapf(err, "zmtp: %s", context)
}
