package zmtp

import (
	"io"

	"github.com/pkg/errors"
)

// protocolVersion is the (major, minor, patch) triple a handshake
// advertises. Patch is unused on the wire (ZMTP greetings only carry
// major/minor) but is kept for symmetry with spec.md §4.3's "(major,
// minor, patch)" wording and to leave room for future bookkeeping.
type protocolVersion struct {
	major, minor, patch byte
}

// defaultVersion is ZMTP 3.0, the version this client negotiates.
var defaultVersion = protocolVersion{major: 3, minor: 0, patch: 0}

// handshake drives the fixed six-step ZMTP handshake of spec.md §4.3
// over an already-connected transport, ending with a "ready"
// transport the caller may use for user data. Any I/O error is fatal
// for this connection attempt; the caller is expected to retry by
// reconnecting from scratch.
func handshake(rw io.ReadWriter, version protocolVersion, asServer bool, localType SocketType, logger Logger) (Metadata, error) {
	// Step 1: send local partial greeting.
	greeting := NewGreeting(version.major, version.minor).AsServer(asServer)
	partial, remainder := greeting.Parts()
	if _, err := rw.Write(partial[:]); err != nil {
		return nil, errors.Wrapf(err, "zmtp: could not send greeting signature")
	}

	// Step 2: read and validate peer's partial greeting.
	var peerPartial [12]byte
	if _, err := io.ReadFull(rw, peerPartial[:]); err != nil {
		return nil, wrapUnexpectedEOF(err, "reading peer greeting signature")
	}
	if peerPartial[0] != 0xFF || peerPartial[9] != 0x7F {
		return nil, wrapProtocolViolation("peer greeting has a bad signature")
	}
	peerMajor := peerPartial[10]
	peerMinor := peerPartial[11]
	if peerMajor != version.major {
		return nil, wrapf(ErrVersionMismatch, "peer major=%d, local major=%d", peerMajor, version.major)
	}
	if peerMinor > version.minor {
		debugf(logger, "peer advertises minor=%d > local minor=%d; continuing at local version", peerMinor, version.minor)
	}

	// Step 3: send local greeting remainder.
	if _, err := rw.Write(remainder[:]); err != nil {
		return nil, errors.Wrapf(err, "zmtp: could not send greeting remainder")
	}

	// Step 4: read and validate peer's greeting remainder.
	var peerRemainder [52]byte
	if _, err := io.ReadFull(rw, peerRemainder[:]); err != nil {
		return nil, wrapUnexpectedEOF(err, "reading peer greeting remainder")
	}
	peer, err := parseGreeting(peerPartial, peerRemainder)
	if err != nil {
		return nil, err
	}
	if peer.mechanism != string(MechanismNULL) {
		return nil, wrapf(ErrUnsupportedMechanism, "peer advertises mechanism %q", peer.mechanism)
	}

	// Step 5: read peer's READY command and extract its properties.
	peerReady, err := readFrame(rw)
	if err != nil {
		return nil, errors.Wrap(err, "zmtp: reading peer READY command")
	}
	cmd, ok := peerReady.AsFrame().AsCommand()
	if !ok {
		return nil, wrapProtocolViolation("expected a READY command, got a message frame")
	}
	name, err := cmd.Name()
	if err != nil {
		return nil, err
	}
	if name != "READY" {
		return nil, wrapf(ErrProtocolViolation, "expected READY command, got %q", name)
	}
	props, err := cmd.Properties()
	if err != nil {
		return nil, err
	}

	meta := Metadata{}
	for _, p := range props {
		meta[p.Name] = p.Value
	}

	if peerType, ok := meta[propSocketType]; ok {
		if !localType.IsCompatible(SocketType(peerType)) {
			warnf(logger, "peer Socket-Type %q is not compatible with local type %q; continuing anyway", peerType, localType)
		}
	}

	// Step 6: send our own READY.
	ready, err := ShortCommand("READY", []Property{{Name: propSocketType, Value: []byte(localType)}})
	if err != nil {
		return nil, err
	}
	if _, err := rw.Write(ready.Bytes()); err != nil {
		return nil, errors.Wrapf(err, "zmtp: could not send READY command")
	}

	infof(logger, "handshake complete: local=%s peer=%s", localType, meta[propSocketType])

	return meta, nil
}
