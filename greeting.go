package zmtp

// greetingSignature is the fixed 10-byte signature opening every
// greeting: 0xFF, eight zero padding bytes, 0x7F.
var greetingSignature = [10]byte{0xFF, 0, 0, 0, 0, 0, 0, 0, 0, 0x7F}

const mechanismNULL = "NULL"

// Greeting builds the 64-byte ZMTP greeting described in spec.md §3.
// Bytes 0..=11 carry the signature and version; bytes 12..=63 carry
// the NUL-padded security mechanism name, the as-server flag, and
// zero filler.
type Greeting struct {
	major, minor byte
	asServer     bool
}

// NewGreeting returns a Greeting advertising the given major/minor
// ZMTP version, as-server false by default.
func NewGreeting(major, minor byte) *Greeting {
	return &Greeting{major: major, minor: minor}
}

// AsServer sets the as-server flag (byte 32). Defaults to false: this
// library only implements the connect side.
func (g *Greeting) AsServer(v bool) *Greeting {
	g.asServer = v
	return g
}

// Bytes renders the full 64-byte greeting.
func (g *Greeting) Bytes() [64]byte {
	var raw [64]byte

	copy(raw[0:10], greetingSignature[:])
	raw[10] = g.major
	raw[11] = g.minor

	copy(raw[12:12+len(mechanismNULL)], mechanismNULL)
	// bytes 16..32 of the mechanism field are zero filler, already
	// zero-valued by virtue of the array's zero value.

	if g.asServer {
		raw[32] = 0x01
	}
	// bytes 33..64 are zero filler.

	return raw
}

// Parts splits the greeting into its two wire-protocol halves: a
// 12-byte partial (signature + version) and a 52-byte remainder
// (mechanism + as-server + filler).
func (g *Greeting) Parts() (partial [12]byte, remainder [52]byte) {
	full := g.Bytes()
	copy(partial[:], full[:12])
	copy(remainder[:], full[12:])
	return partial, remainder
}

// parsedGreeting is what ensuing handshake code extracts from a
// peer's greeting bytes.
type parsedGreeting struct {
	major, minor byte
	mechanism    string
	asServer     bool
}

// parseGreeting validates and decodes a full 64-byte peer greeting.
func parseGreeting(partial [12]byte, remainder [52]byte) (parsedGreeting, error) {
	var pg parsedGreeting

	if partial[0] != 0xFF || partial[9] != 0x7F {
		return pg, wrapProtocolViolation("bad greeting signature")
	}

	pg.major = partial[10]
	pg.minor = partial[11]

	mech := remainder[:20]
	end := 0
	for end < len(mech) && mech[end] != 0 {
		end++
	}
	pg.mechanism = string(mech[:end])

	pg.asServer = remainder[20] != 0

	return pg, nil
}

func wrapProtocolViolation(msg string) error {
	return wrapf(ErrProtocolViolation, msg)
}
