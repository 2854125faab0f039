package zmtp

// Connect is the higher-level entry point spec.md §6 describes:
// `addr` is a host:port pair; `transport` is validated and only
// `"tcp"` is accepted, matching spec.md §1's TCP-only core. It
// dispatches to the DialXxx constructor matching socketType, which
// blocks until the handshake completes, retrying indefinitely on
// failure.
func Connect(socketType SocketType, transport, addr string, opts ...Option) (Socket, error) {
	if transport != "tcp" {
		return nil, wrapf(ErrInvalidInput, "unsupported transport %q; only tcp is supported", transport)
	}

	switch socketType {
	case TypePull:
		return DialPull(addr, opts...), nil
	case TypePush:
		return DialPush(addr, opts...), nil
	case TypePub:
		return DialPub(addr, opts...), nil
	case TypeSub:
		return DialSub(addr, opts...), nil
	case TypeReq:
		return DialReq(addr, opts...), nil
	case TypeRep:
		return DialRep(addr, opts...), nil
	default:
		return nil, wrapf(ErrInvalidInput, "unknown socket type %q", socketType)
	}
}
