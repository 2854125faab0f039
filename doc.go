// Package zmtp implements the connect side of the ZeroMQ Message
// Transport Protocol (ZMTP v3.0) over TCP: blocking, synchronous
// sockets (Pull, Push, Pub, Sub, Req, Rep) that interoperate with
// standard ZeroMQ peers using the NULL security mechanism.
//
// There is no background I/O thread and no reactor: every DialXxx
// constructor blocks until its handshake completes, retrying
// indefinitely on failure, and every Send/Recv call may block on the
// underlying TCP socket. If the peer closes the connection, the
// transport is dropped and silently re-established (same retry
// policy) on the next Send/Recv. A single socket is not safe for
// concurrent use from multiple goroutines.
package zmtp
