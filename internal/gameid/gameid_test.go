package gameid

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewProducesValidIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if len(id) != 26 {
			t.Fatalf("id %q has length %d, want 26", id, len(id))
		}
		for _, c := range id {
			if !strings.ContainsRune(alphabet, c) {
				t.Fatalf("id %q contains %q, not in the base32 alphabet", id, c)
			}
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestEncodeIsStable(t *testing.T) {
	id := uuid.MustParse("018f3d9a-5b7c-7abc-8def-0123456789ab")
	first := Encode(id)
	second := Encode(id)
	if first != second {
		t.Errorf("Encode not deterministic: %q vs %q", first, second)
	}
}

func TestIDsSortChronologically(t *testing.T) {
	// UUIDv7 leads with a millisecond timestamp, and the base32 encoding
	// preserves byte order, so ids generated later never sort earlier.
	prev := New()
	for i := 0; i < 100; i++ {
		next := New()
		if next < prev {
			t.Fatalf("id %q sorts before earlier id %q", next, prev)
		}
		prev = next
	}
}
