package zmtp

// Req is a ZMQ REQ socket in the "must send next" state. Calling Send
// consumes it and returns a ReqPending, which exposes only Recv: the
// alternation is enforced by the type system, not a runtime flag
// (spec.md §9's typestate design note).
type Req struct {
	base
}

// ReqPending is a ZMQ REQ socket in the "must recv next" state. It
// has no Send method: there is no way to call Send twice in a row
// without an intervening Recv, so misuse is a compile error rather
// than a runtime one.
type ReqPending struct {
	base
}

// DialReq connects to address and blocks until the ZMTP handshake
// succeeds (retrying indefinitely on failure), returning a Req ready
// to Send.
func DialReq(address string, opts ...Option) *Req {
	return &Req{base{stream: NewStream(TypeReq, address, opts...)}}
}

// Send emits parts as a multipart request. ZMTP mandates an empty
// delimiter frame between request routing and body for REQ/REP; it is
// handled transparently here as the first part of the multipart, so
// callers pass only their actual payload parts.
func (r *Req) Send(parts [][]byte) (*ReqPending, error) {
	framed := append([][]byte{{}}, parts...)
	if err := r.sendMultipart(framed); err != nil {
		return nil, err
	}
	return &ReqPending{base: r.base}, nil
}

// Recv blocks for the reply, returning the payload (with the leading
// empty delimiter frame stripped) and a fresh Req ready to Send again.
func (p *ReqPending) Recv() ([][]byte, *Req, error) {
	parts, err := p.recvMultipart()
	if err != nil {
		return nil, nil, err
	}
	return stripDelimiter(parts), &Req{base: p.base}, nil
}

// stripDelimiter drops the leading empty delimiter frame ZMTP
// mandates between request routing and body, if present.
func stripDelimiter(parts [][]byte) [][]byte {
	if len(parts) > 0 && len(parts[0]) == 0 {
		return parts[1:]
	}
	return parts
}
