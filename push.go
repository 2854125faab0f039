package zmtp

// Push is a send-only ZMQ PUSH socket. It never receives user data.
type Push struct {
	base
}

// DialPush connects to address and blocks until the ZMTP handshake
// succeeds, retrying indefinitely on failure. A later drop (write
// error) reconnects lazily on the next Send.
func DialPush(address string, opts ...Option) *Push {
	return &Push{base{stream: NewStream(TypePush, address, opts...)}}
}

// Send emits parts as a multipart message. parts must be non-empty
// and ordered; the send blocks on partial writes.
func (p *Push) Send(parts [][]byte) error {
	return p.sendMultipart(parts)
}
