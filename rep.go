package zmtp

// Rep is a ZMQ REP socket in the "must recv next" state. Calling Recv
// consumes it and returns the request payload plus a RepPending,
// which exposes only Send (spec.md §9's typestate design note,
// mirroring Req/ReqPending).
type Rep struct {
	base
}

// RepPending is a ZMQ REP socket in the "must send next" state. It
// has no Recv method.
type RepPending struct {
	base
}

// DialRep connects to address and blocks until the ZMTP handshake
// succeeds (retrying indefinitely on failure), returning a Rep ready
// to Recv.
func DialRep(address string, opts ...Option) *Rep {
	return &Rep{base{stream: NewStream(TypeRep, address, opts...)}}
}

// Recv blocks for the next request, returning its payload (delimiter
// frame stripped) and a RepPending ready to Send the reply.
func (r *Rep) Recv() ([][]byte, *RepPending, error) {
	parts, err := r.recvMultipart()
	if err != nil {
		return nil, nil, err
	}
	return stripDelimiter(parts), &RepPending{base: r.base}, nil
}

// Send emits the reply, reinserting the empty delimiter frame, and
// returns a fresh Rep ready to Recv the next request.
func (p *RepPending) Send(parts [][]byte) (*Rep, error) {
	framed := append([][]byte{{}}, parts...)
	if err := p.sendMultipart(framed); err != nil {
		return nil, err
	}
	return &Rep{base: p.base}, nil
}
