package zmtp

import "net"

// transport is a tagged union over the underlying connection
// primitive. Only the TCP connect-side variant is implemented; bind-
// side and IPC variants are left as documented non-goals (spec.md
// §1, §4.2) but the shape leaves room for them.
type transport struct {
	tcp net.Conn // non-nil for the only implemented variant
}

func dialTCP(dialer *net.Dialer, address string) (*transport, error) {
	conn, err := dialer.Dial("tcp", address)
	if err != nil {
		return nil, err
	}
	return &transport{tcp: conn}, nil
}

func (t *transport) Read(p []byte) (int, error) {
	return t.tcp.Read(p)
}

func (t *transport) Write(p []byte) (int, error) {
	return t.tcp.Write(p)
}

func (t *transport) Close() error {
	return t.tcp.Close()
}
