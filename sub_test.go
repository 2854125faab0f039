package zmtp

import (
	"net"
	"testing"
)

func TestSubscriptionEntrySizeClass(t *testing.T) {
	cases := []struct {
		topic    []byte
		wantKind subscriptionKind
	}{
		{nil, subEmpty},
		{[]byte{}, subEmpty},
		{[]byte{0xDE}, subLiteral},
		{[]byte("12345678"), subLiteral}, // exactly 8 bytes
		{[]byte("123456789"), subHashed}, // 9 bytes, over the literal threshold
	}

	for _, tc := range cases {
		entry := newSubscriptionEntry(tc.topic)
		if entry.kind != tc.wantKind {
			t.Fatalf("topic %v: kind = %v, want %v", tc.topic, entry.kind, tc.wantKind)
		}
	}
}

func TestSubscriptionPrefixFilter(t *testing.T) {
	// Scenario 5: subscribe [0xDE]; "DE AD BE EF" delivered, "AB CD"
	// dropped, "DE" alone delivered.
	entry := newSubscriptionEntry([]byte{0xDE})

	if !entry.matches([]byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Fatalf("expected DE AD BE EF to match prefix DE")
	}
	if entry.matches([]byte{0xAB, 0xCD}) {
		t.Fatalf("expected AB CD not to match prefix DE")
	}
	if !entry.matches([]byte{0xDE}) {
		t.Fatalf("expected DE alone to match prefix DE")
	}
}

func TestSubscriptionEmptyMatchesEverything(t *testing.T) {
	entry := newSubscriptionEntry(nil)
	if !entry.matches([]byte("anything at all")) {
		t.Fatalf("empty subscription should match everything")
	}
	if !entry.matches(nil) {
		t.Fatalf("empty subscription should match an empty body")
	}
}

func TestSubscriptionHashedPrefix(t *testing.T) {
	topic := []byte("a-long-enough-topic-prefix")
	entry := newSubscriptionEntry(topic)
	if entry.kind != subHashed {
		t.Fatalf("expected a hashed entry for a long topic")
	}

	body := append(append([]byte{}, topic...), []byte("-and-then-the-rest-of-the-message")...)
	if !entry.matches(body) {
		t.Fatalf("expected body with matching prefix to match")
	}

	other := []byte("a-totally-different-long-prefix-value")
	if entry.matches(other) {
		t.Fatalf("expected a different prefix of the same length not to match")
	}

	if entry.matches(topic[:len(topic)-1]) {
		t.Fatalf("expected a body shorter than the hashed prefix length not to match")
	}
}

func TestSubHasNoSubscriptionsMatchesNothing(t *testing.T) {
	sub := &Sub{}
	if len(sub.topics) != 0 {
		t.Fatalf("expected a fresh Sub to have no subscriptions")
	}

	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()
	sub.stream = &Stream{transport: &transport{tcp: client}}

	go func() { _, _ = server.Write(shortMessageFrame([]byte("anything"), false)) }()

	first, matched, err := sub.recvFirstFrame()
	if err != nil {
		t.Fatalf("recvFirstFrame() error: %v", err)
	}
	if first == nil || matched {
		t.Fatalf("expected a message frame matching no subscription, got first=%v matched=%v", first, matched)
	}
}

func TestSubEmptyTopicMatchesEverything(t *testing.T) {
	sub := &Sub{topics: []subscriptionEntry{newSubscriptionEntry(nil)}}
	for _, body := range [][]byte{[]byte("x"), nil, []byte("anything")} {
		matched := false
		for _, entry := range sub.topics {
			if entry.matches(body) {
				matched = true
			}
		}
		if !matched {
			t.Fatalf("expected body %v to match the empty-topic subscription", body)
		}
	}
}
