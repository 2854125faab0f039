package zmtp

import (
	"bytes"
	"testing"
)

func TestFrameClassification(t *testing.T) {
	cases := []struct {
		name     string
		bytes    []byte
		wantKind FrameKind
		wantBody []byte
		wantErr  bool
	}{
		{
			name:     "short message last",
			bytes:    []byte{0x00, 0x03, 0x41, 0x42, 0x43},
			wantKind: KindMessageTail,
			wantBody: []byte("ABC"),
		},
		{
			name:     "short message more",
			bytes:    []byte{0x01, 0x01, 0xFF},
			wantKind: KindMessagePart,
			wantBody: []byte{0xFF},
		},
		{
			name:     "short command",
			bytes:    []byte{0x04, 0x02, 0x01, 0x58},
			wantKind: KindCommand,
		},
		{
			name:    "invalid tag",
			bytes:   []byte{0x05, 0x00},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFrame(tc.bytes)
			kind, err := f.Kind()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got kind=%v", kind)
				}
				if !IsMalformedFrame(err) {
					t.Fatalf("expected ErrMalformedFrame, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if kind != tc.wantKind {
				t.Fatalf("kind = %v, want %v", kind, tc.wantKind)
			}
			if tc.wantKind != KindCommand {
				body, err := f.Body()
				if err != nil {
					t.Fatalf("Body() error: %v", err)
				}
				if !bytes.Equal(body, tc.wantBody) {
					t.Fatalf("body = %v, want %v", body, tc.wantBody)
				}
			}
		})
	}
}

func TestFrameCommandName(t *testing.T) {
	f := NewFrame([]byte{0x04, 0x02, 0x01, 0x58})
	cmd, ok := f.AsCommand()
	if !ok {
		t.Fatalf("expected a command frame")
	}
	name, err := cmd.Name()
	if err != nil {
		t.Fatalf("Name() error: %v", err)
	}
	if name != "X" {
		t.Fatalf("name = %q, want %q", name, "X")
	}
}

func TestMultipartSendFraming(t *testing.T) {
	frames := [][]byte{
		shortMessageFrame([]byte{0xAA}, true),
		shortMessageFrame([]byte{0xBB, 0xCC}, true),
		shortMessageFrame([]byte{0xDD}, false),
	}

	want := [][]byte{
		{0x01, 0x01, 0xAA},
		{0x01, 0x02, 0xBB, 0xCC},
		{0x00, 0x01, 0xDD},
	}

	for i, f := range frames {
		if !bytes.Equal(f, want[i]) {
			t.Fatalf("frame %d = % x, want % x", i, f, want[i])
		}
	}
}

func TestFrameRoundTrip(t *testing.T) {
	// Scenario: for any well-formed frame, parsing then re-deriving its
	// header from its own Kind()/Size() must agree with the original bytes.
	original := shortMessageFrame([]byte("hello"), false)

	f := NewFrame(original)
	kind, err := f.Kind()
	if err != nil {
		t.Fatalf("Kind() error: %v", err)
	}
	if kind != KindMessageTail {
		t.Fatalf("kind = %v, want KindMessageTail", kind)
	}
	size, err := f.Size()
	if err != nil {
		t.Fatalf("Size() error: %v", err)
	}
	if size != len("hello") {
		t.Fatalf("size = %d, want %d", size, len("hello"))
	}
	body, err := f.Body()
	if err != nil {
		t.Fatalf("Body() error: %v", err)
	}
	rebuilt := shortMessageFrame(body, kind == KindMessagePart)
	if !bytes.Equal(rebuilt, original) {
		t.Fatalf("re-serialized = % x, want % x", rebuilt, original)
	}
	if !bytes.Equal(f.Bytes(), original) {
		t.Fatalf("round-trip mismatch: %v != %v", f.Bytes(), original)
	}
}

func TestLongFrameEncoding(t *testing.T) {
	body := bytes.Repeat([]byte{0x7}, 300)
	frame := shortMessageFrame(body, true)
	if frame[0] != tagMessageLongMore {
		t.Fatalf("tag = 0x%02x, want 0x%02x", frame[0], tagMessageLongMore)
	}
	f := NewFrame(frame)
	size, err := f.Size()
	if err != nil {
		t.Fatalf("Size() error: %v", err)
	}
	if size != len(body) {
		t.Fatalf("size = %d, want %d", size, len(body))
	}
}
