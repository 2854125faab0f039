package zmtp

// Pull is a receive-only ZMQ PULL socket. It never sends user data.
type Pull struct {
	base
}

// DialPull connects to address and blocks until the ZMTP handshake
// succeeds, retrying indefinitely on failure (spec.md §6's
// `<Sock>::connect(addr)`). A later drop (peer close) reconnects
// lazily on the next Recv.
func DialPull(address string, opts ...Option) *Pull {
	return &Pull{base{stream: NewStream(TypePull, address, opts...)}}
}

// Recv returns the next complete multipart payload. Any command frame
// encountered mid-stream is a protocol violation: PULL sockets never
// subscribe, so nothing should ever produce one here.
func (p *Pull) Recv() ([][]byte, error) {
	return p.recvMultipart()
}
