package zmtp

import (
	"io"
	"net"
)

// fakePeer drives the server/peer half of a ZMTP handshake plus an
// optional post-handshake exchange over conn, matching the sequence
// of reads/writes our own handshake() performs on the client half.
// Grounded on the net.Pipe()-plus-feeder-goroutine shape used by
// _examples/other_examples/.../tcp_transport_test.go
// (simonvetter-modbus) to fake a remote endpoint without a real
// socket.
type fakePeer struct {
	conn     net.Conn
	peerType SocketType
}

func (p *fakePeer) handshake() error {
	var clientPartial [12]byte
	if _, err := io.ReadFull(p.conn, clientPartial[:]); err != nil {
		return err
	}

	partial, remainder := NewGreeting(3, 0).Parts()
	if _, err := p.conn.Write(partial[:]); err != nil {
		return err
	}

	var clientRemainder [52]byte
	if _, err := io.ReadFull(p.conn, clientRemainder[:]); err != nil {
		return err
	}
	if _, err := p.conn.Write(remainder[:]); err != nil {
		return err
	}

	ready, err := ShortCommand("READY", []Property{{Name: propSocketType, Value: []byte(p.peerType)}})
	if err != nil {
		return err
	}
	if _, err := p.conn.Write(ready.Bytes()); err != nil {
		return err
	}

	if _, err := readFrame(p.conn); err != nil {
		return err
	}

	return nil
}

// sendMultipart writes parts as a multipart message directly onto the
// wire, bypassing any client-side socket type.
func (p *fakePeer) sendMultipart(parts [][]byte) error {
	for i, part := range parts {
		more := i < len(parts)-1
		if _, err := p.conn.Write(shortMessageFrame(part, more)); err != nil {
			return err
		}
	}
	return nil
}

// recvMultipart reads frames until a LAST message frame, returning
// the accumulated bodies.
func (p *fakePeer) recvMultipart() ([][]byte, error) {
	var parts [][]byte
	for {
		fb, err := readFrame(p.conn)
		if err != nil {
			return nil, err
		}
		body, isLast, ok := fb.AsFrame().AsMessage()
		if !ok {
			continue
		}
		parts = append(parts, body)
		if isLast {
			return parts, nil
		}
	}
}

// newLoopbackListener starts a TCP listener on 127.0.0.1 with an
// ephemeral port, returning it alongside its dial address.
func newLoopbackListener() (net.Listener, string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, "", err
	}
	return ln, ln.Addr().String(), nil
}
