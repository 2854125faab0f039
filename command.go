package zmtp

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Property is a single (name, value) pair from a command's property
// list, e.g. ("Socket-Type", "PULL").
type Property struct {
	Name  string
	Value []byte
}

// InvalidUTF8 is a placeholder text for a property value (or name)
// that is not valid UTF-8. No function in this package substitutes
// it: Property and Properties return raw bytes without checking them,
// and StringProperty reports an invalid value as ErrMalformedCommand.
const InvalidUTF8 = "�(invalid utf-8)"

// LongCommand builds a FrameBuf encoding a long command frame (8-byte
// length prefix), for bodies that don't fit in a short command.
func LongCommand(name string, properties []Property) (FrameBuf, error) {
	if len(name) > 255 {
		return FrameBuf{}, errors.Wrapf(ErrInvalidInput, "command name %q exceeds 255 bytes", name)
	}

	body := []byte{byte(len(name))}
	body = append(body, name...)

	for _, p := range properties {
		if len(p.Name) > 255 {
			return FrameBuf{}, errors.Wrapf(ErrInvalidInput, "property name %q exceeds 255 bytes", p.Name)
		}
		if uint64(len(p.Value)) > 0xFFFFFFFF {
			return FrameBuf{}, errors.Wrapf(ErrInvalidInput, "property %q value exceeds 2^32-1 bytes", p.Name)
		}
		body = append(body, byte(len(p.Name)))
		body = append(body, p.Name...)

		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(p.Value)))
		body = append(body, lenBuf[:]...)
		body = append(body, p.Value...)
	}

	out := make([]byte, 9, 9+len(body))
	out[0] = tagCommandLong
	binary.BigEndian.PutUint64(out[1:9], uint64(len(body)))
	out = append(out, body...)

	return FrameBuf{bytes: out}, nil
}

// Command is a borrowed view over a command frame: a 1-byte
// length-prefixed ASCII name followed by a property list.
type Command struct {
	frame Frame
}

// nameRange returns the byte offsets of the name within the command's
// raw bytes: [start, end).
func (c Command) nameRange() (start, end int, err error) {
	raw := c.frame.bytes
	idx, err := headerLen(raw[0])
	if err != nil {
		return 0, 0, err
	}
	if len(raw) < idx+1 {
		return 0, 0, errors.Wrapf(ErrMalformedCommand, "command frame truncated before name length")
	}
	nameLen := int(raw[idx])
	start = idx + 1
	end = start + nameLen
	if end > len(raw) {
		return 0, 0, errors.Wrapf(ErrMalformedCommand, "command name length overruns frame body")
	}
	return start, end, nil
}

// Name returns the command's name, e.g. "READY" or "SUBSCRIBE".
func (c Command) Name() (string, error) {
	start, end, err := c.nameRange()
	if err != nil {
		return "", err
	}
	return string(c.frame.bytes[start:end]), nil
}

// Properties parses the command's full property list. Parsing
// consumes exactly the declared body; trailing or truncated bytes are
// reported as ErrMalformedCommand.
func (c Command) Properties() ([]Property, error) {
	_, nameEnd, err := c.nameRange()
	if err != nil {
		return nil, err
	}

	raw := c.frame.bytes
	hdr, _ := headerLen(raw[0]) // tag already validated by nameRange
	size, err := c.frame.Size()
	if err != nil {
		return nil, err
	}
	bodyEnd := hdr + size
	if bodyEnd != len(raw) {
		return nil, errors.Wrapf(ErrMalformedCommand, "command body is %d bytes, declared %d", len(raw)-hdr, size)
	}

	var props []Property
	pos := nameEnd
	for pos < bodyEnd {
		if pos+1 > bodyEnd {
			return nil, errors.Wrapf(ErrMalformedCommand, "truncated property name length")
		}
		nameLen := int(raw[pos])
		pos++
		if pos+nameLen > bodyEnd {
			return nil, errors.Wrapf(ErrMalformedCommand, "property name length overruns frame body")
		}
		name := string(raw[pos : pos+nameLen])
		pos += nameLen

		if pos+4 > bodyEnd {
			return nil, errors.Wrapf(ErrMalformedCommand, "truncated property value length")
		}
		valueLen := int(binary.BigEndian.Uint32(raw[pos : pos+4]))
		pos += 4
		if pos+valueLen > bodyEnd {
			return nil, errors.Wrapf(ErrMalformedCommand, "property value length overruns frame body")
		}
		value := raw[pos : pos+valueLen]
		pos += valueLen

		props = append(props, Property{Name: name, Value: append([]byte(nil), value...)})
	}

	if pos != bodyEnd {
		return nil, errors.Wrapf(ErrMalformedCommand, "trailing bytes after property list")
	}

	return props, nil
}

// Property looks up a single property by name. ok is false if no such
// property is present.
func (c Command) Property(name string) (value []byte, ok bool, err error) {
	props, err := c.Properties()
	if err != nil {
		return nil, false, err
	}
	for _, p := range props {
		if p.Name == name {
			return p.Value, true, nil
		}
	}
	return nil, false, nil
}

// StringProperty looks up a property and requires its value be valid
// UTF-8, as spec.md §4.1 mandates for READY's Socket-Type.
func (c Command) StringProperty(name string) (string, bool, error) {
	value, ok, err := c.Property(name)
	if err != nil || !ok {
		return "", ok, err
	}
	if !utf8.Valid(value) {
		return "", true, errors.Wrapf(ErrMalformedCommand, "property %q is not valid UTF-8", name)
	}
	return string(value), true, nil
}

// GoString renders a Command for debugging without ever panicking on
// malformed input.
func (c Command) GoString() string {
	name, err := c.Name()
	if err != nil {
		return fmt.Sprintf("Command{<malformed: %v>}", err)
	}
	props, err := c.Properties()
	if err != nil {
		return fmt.Sprintf("Command{Name: %q, <malformed properties: %v>}", name, err)
	}
	return fmt.Sprintf("Command{Name: %q, Properties: %v}", name, props)
}
