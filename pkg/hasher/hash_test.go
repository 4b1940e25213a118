package hasher

import "testing"

func TestHash_KnownVector(t *testing.T) {
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got := Hash("hello"); got != want {
		t.Fatalf("unexpected hash: got %s want %s", got, want)
	}
	if got := SumBytes([]byte("hello")); got != want {
		t.Fatalf("SumBytes differs from Hash: %s", got)
	}
}

func TestKey(t *testing.T) {
	if Key("ab", "c") == Key("a", "bc") {
		t.Fatal("part boundaries must change the key")
	}
	if Key("p1", "TRIP_BOOKED") != Key("p1", "TRIP_BOOKED") {
		t.Fatal("key must be deterministic")
	}
}

func BenchmarkKey(b *testing.B) {
	for b.Loop() {
		_ = Key("9b2c1f0e-passenger", "TRIP_COMPLETED", "completed", "2026-02-21T09:30:00Z")
	}
}
