package zmtp

// Pub is a send-only ZMQ PUB socket. Topic filtering is performed by
// the peer (the bound SUB side), not locally: spec.md §4.5 notes that
// filtering on our connect-side role is delegated entirely, since a
// PUB that is itself the bound/server role (where local filtering
// would be mandatory) is out of scope.
type Pub struct {
	base
}

// DialPub connects to address and blocks until the ZMTP handshake
// succeeds, retrying indefinitely on failure.
func DialPub(address string, opts ...Option) *Pub {
	return &Pub{base{stream: NewStream(TypePub, address, opts...)}}
}

// Send emits parts as a multipart message, unfiltered.
func (p *Pub) Send(parts [][]byte) error {
	return p.sendMultipart(parts)
}
