package zmtp

import "github.com/pkg/errors"

// Sentinel errors a caller can compare against via errors.Cause.
var (
	// ErrMalformedFrame is returned when a frame's tag byte or length
	// prefix cannot be parsed.
	ErrMalformedFrame = errors.New("zmtp: malformed frame")

	// ErrMalformedCommand is returned when a command's property list
	// overruns or underruns the frame body.
	ErrMalformedCommand = errors.New("zmtp: malformed command")

	// ErrProtocolViolation covers a bad greeting signature, an
	// unsupported security mechanism, or a command frame turning up
	// somewhere the socket pattern doesn't allow one.
	ErrProtocolViolation = errors.New("zmtp: protocol violation")

	// ErrVersionMismatch is returned when the peer's major ZMTP
	// version differs from ours.
	ErrVersionMismatch = errors.New("zmtp: version mismatch")

	// ErrUnsupportedMechanism is returned when the peer's greeting
	// advertises a security mechanism other than NULL.
	ErrUnsupportedMechanism = errors.New("zmtp: unsupported security mechanism")

	// ErrUnexpectedEOF is returned when the peer closes mid-frame.
	ErrUnexpectedEOF = errors.New("zmtp: unexpected EOF")

	// ErrInvalidInput covers caller mistakes: empty multipart sends,
	// oversized topics, oversized property names/values.
	ErrInvalidInput = errors.New("zmtp: invalid input")
)

// isErr reports whether err's cause chain contains target, using
// errors.Cause to peel back the github.com/pkg/errors wrapping the
// rest of this package applies.
func isErr(err, target error) bool {
	for err != nil {
		if err == target {
			return true
		}
		cause := errors.Cause(err)
		if cause == err {
			return false
		}
		err = cause
	}
	return false
}

// IsMalformedFrame reports whether err (or its wrapped cause) is ErrMalformedFrame.
func IsMalformedFrame(err error) bool { return isErr(err, ErrMalformedFrame) }

// IsProtocolViolation reports whether err (or its wrapped cause) is ErrProtocolViolation.
func IsProtocolViolation(err error) bool { return isErr(err, ErrProtocolViolation) }

// IsVersionMismatch reports whether err (or its wrapped cause) is ErrVersionMismatch.
func IsVersionMismatch(err error) bool { return isErr(err, ErrVersionMismatch) }

// wrapf is a small convenience around errors.Wrapf for the common
// case of attaching a single descriptive message to a sentinel.
func wrapf(sentinel error, format string, args ...interface{}) error {
	return errors.Wrapf(sentinel, format, args...)
}
