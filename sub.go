package zmtp

import (
	"bytes"
	"hash/fnv"

	"github.com/pkg/errors"
)

// subscriptionKind discriminates the three subscription-entry size
// classes from spec.md §3: hashing short prefixes wastes cycles, so
// literals up to 8 bytes are stored and compared directly.
type subscriptionKind int

const (
	subEmpty subscriptionKind = iota
	subLiteral
	subHashed
)

// subscriptionEntry is one registered topic prefix. The hashed form
// is a Bloom-free approximation: hash collisions cause false-positive
// delivery, accepted deliberately since the peer also filters
// authoritatively on its own side (spec.md §9).
type subscriptionEntry struct {
	kind    subscriptionKind
	literal []byte // valid bytes when kind == subLiteral, len <= 8
	hash    uint64 // valid when kind == subHashed
	length  int    // valid when kind == subHashed: number of leading bytes hashed
}

func newSubscriptionEntry(topic []byte) subscriptionEntry {
	switch {
	case len(topic) == 0:
		return subscriptionEntry{kind: subEmpty}
	case len(topic) <= 8:
		lit := make([]byte, len(topic))
		copy(lit, topic)
		return subscriptionEntry{kind: subLiteral, literal: lit}
	default:
		h := fnv.New64a()
		_, _ = h.Write(topic)
		return subscriptionEntry{kind: subHashed, hash: h.Sum64(), length: len(topic)}
	}
}

func (e subscriptionEntry) matches(body []byte) bool {
	switch e.kind {
	case subEmpty:
		return true
	case subLiteral:
		return bytes.HasPrefix(body, e.literal)
	case subHashed:
		if len(body) < e.length {
			return false
		}
		h := fnv.New64a()
		_, _ = h.Write(body[:e.length])
		return h.Sum64() == e.hash
	default:
		return false
	}
}

// Sub is a receive-only ZMQ SUB socket with topic-prefix filtering.
type Sub struct {
	base
	topics []subscriptionEntry
}

// DialSub connects to address and blocks until the ZMTP handshake
// succeeds, retrying indefinitely on failure.
func DialSub(address string, opts ...Option) *Sub {
	return &Sub{base: base{stream: NewStream(TypeSub, address, opts...)}}
}

// Subscribe registers topic locally and sends the legacy ZMTP 3.0
// subscribe frame: a LAST message frame whose body is 0x01 followed
// by the topic bytes (spec.md §4.5). The ZMTP 3.1 SUBSCRIBE command
// form is decodable (see Command.Name) but never emitted here, since
// the negotiated protocol version is 3.0.
func (s *Sub) Subscribe(topic []byte) error {
	s.topics = append(s.topics, newSubscriptionEntry(topic))
	return s.sendSubscriptionFrame(0x01, topic)
}

// Cancel unregisters topic and sends the corresponding legacy cancel
// frame (body prefix 0x00). It does not remove a matching local
// subscriptionEntry on a best-effort basis beyond an exact-topic
// re-derivation, matching the union-of-entries semantics spec.md §3
// describes for the subscription list.
func (s *Sub) Cancel(topic []byte) error {
	target := newSubscriptionEntry(topic)
	for i, t := range s.topics {
		if subscriptionEqual(t, target) {
			s.topics = append(s.topics[:i], s.topics[i+1:]...)
			break
		}
	}
	return s.sendSubscriptionFrame(0x00, topic)
}

func subscriptionEqual(a, b subscriptionEntry) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case subEmpty:
		return true
	case subLiteral:
		return bytes.Equal(a.literal, b.literal)
	case subHashed:
		return a.hash == b.hash && a.length == b.length
	default:
		return false
	}
}

func (s *Sub) sendSubscriptionFrame(tag byte, topic []byte) error {
	if len(topic) > 255 {
		return errors.Wrapf(ErrInvalidInput, "subscription topic of %d bytes exceeds 255 bytes", len(topic))
	}
	body := append([]byte{tag}, topic...)
	frame := shortMessageFrame(body, false)
	_, err := s.stream.Write(frame)
	if err != nil {
		return errors.Wrap(err, "zmtp: sending subscription frame")
	}
	return nil
}

// Recv reads incoming multipart messages until one matches a
// registered subscription, returning it. Messages that don't match
// any subscription are fully consumed and discarded; command frames
// encountered between messages are silently skipped (spec.md §4.5).
func (s *Sub) Recv() ([][]byte, error) {
	for {
		first, matched, err := s.recvFirstFrame()
		if err != nil {
			return nil, err
		}
		if first == nil {
			// a command frame between messages; keep scanning.
			continue
		}

		if !matched {
			if err := s.drainRemainder(first.isLast); err != nil {
				return nil, err
			}
			continue
		}

		parts := [][]byte{first.body}
		if first.isLast {
			return parts, nil
		}
		rest, err := s.recvRemainder()
		if err != nil {
			return nil, err
		}
		return append(parts, rest...), nil
	}
}

// RecvUnchecked reads the next multipart message without performing
// any topic-prefix check, bypassing Sub's filtering. This supplements
// spec.md's SUB behavior (see SPEC_FULL.md §8) and is primarily useful
// for testing the filter itself against a known publisher stream.
func (s *Sub) RecvUnchecked() ([][]byte, error) {
	return s.recvMultipart()
}

type subFrame struct {
	body   []byte
	isLast bool
}

// recvFirstFrame reads one frame, skipping command frames (returning
// first == nil so the caller loops), and reports whether its body
// matches any registered subscription.
func (s *Sub) recvFirstFrame() (first *subFrame, matched bool, err error) {
	fb, err := s.stream.RecvFrame()
	if err != nil {
		return nil, false, err
	}
	body, isLast, ok := fb.AsFrame().AsMessage()
	if !ok {
		return nil, false, nil
	}
	for _, t := range s.topics {
		if t.matches(body) {
			return &subFrame{body: body, isLast: isLast}, true, nil
		}
	}
	return &subFrame{body: body, isLast: isLast}, false, nil
}

// recvRemainder reads the rest of a matched multipart message,
// skipping any interleaved command frames.
func (s *Sub) recvRemainder() ([][]byte, error) {
	var parts [][]byte
	for {
		fb, err := s.stream.RecvFrame()
		if err != nil {
			return nil, err
		}
		body, isLast, ok := fb.AsFrame().AsMessage()
		if !ok {
			continue
		}
		parts = append(parts, body)
		if isLast {
			return parts, nil
		}
	}
}

// drainRemainder consumes and discards the rest of a non-matching
// multipart message.
func (s *Sub) drainRemainder(alreadyLast bool) error {
	if alreadyLast {
		return nil
	}
	for {
		fb, err := s.stream.RecvFrame()
		if err != nil {
			return err
		}
		_, isLast, ok := fb.AsFrame().AsMessage()
		if !ok {
			continue
		}
		if isLast {
			return nil
		}
	}
}
