package zmtp

import (
	"bytes"
	"testing"
)

func TestGreetingBytes(t *testing.T) {
	g := NewGreeting(3, 0).AsServer(false)
	raw := g.Bytes()

	wantHead := []byte{0xFF, 0, 0, 0, 0, 0, 0, 0, 0, 0x7F, 3, 0}
	if !bytes.Equal(raw[:12], wantHead) {
		t.Fatalf("greeting head = % x, want % x", raw[:12], wantHead)
	}
	if !bytes.Equal(raw[12:16], []byte("NULL")) {
		t.Fatalf("mechanism = %q, want %q", raw[12:16], "NULL")
	}
	if raw[32] != 0x00 {
		t.Fatalf("as-server byte = 0x%02x, want 0x00", raw[32])
	}
}

func TestGreetingAsServer(t *testing.T) {
	g := NewGreeting(3, 0).AsServer(true)
	raw := g.Bytes()
	if raw[32] != 0x01 {
		t.Fatalf("as-server byte = 0x%02x, want 0x01", raw[32])
	}
}

func TestGreetingParts(t *testing.T) {
	g := NewGreeting(3, 0)
	partial, remainder := g.Parts()
	full := g.Bytes()

	if !bytes.Equal(partial[:], full[:12]) {
		t.Fatalf("partial mismatch")
	}
	if !bytes.Equal(remainder[:], full[12:]) {
		t.Fatalf("remainder mismatch")
	}
}

func TestParseGreetingRejectsBadSignature(t *testing.T) {
	var partial [12]byte
	var remainder [52]byte
	copy(remainder[:4], "NULL")

	partial[0] = 0x00 // wrong
	partial[9] = 0x7F

	_, err := parseGreeting(partial, remainder)
	if !IsProtocolViolation(err) {
		t.Fatalf("expected ErrProtocolViolation, got %v", err)
	}
}

func TestParseGreetingMechanism(t *testing.T) {
	var partial [12]byte
	partial[0] = 0xFF
	partial[9] = 0x7F
	partial[10] = 3

	var remainder [52]byte
	copy(remainder[:4], "NULL")

	pg, err := parseGreeting(partial, remainder)
	if err != nil {
		t.Fatalf("parseGreeting() error: %v", err)
	}
	if pg.mechanism != "NULL" {
		t.Fatalf("mechanism = %q, want NULL", pg.mechanism)
	}
	if pg.major != 3 {
		t.Fatalf("major = %d, want 3", pg.major)
	}
}
