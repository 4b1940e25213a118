package passhash

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	enc, err := HashPasswordWithIters("kuya-ben", 1000)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(enc, "pbkdf2_sha256$1000$") {
		t.Fatalf("unexpected encoding %q", enc)
	}

	ok, err := VerifyPassword("kuya-ben", enc)
	if err != nil || !ok {
		t.Fatalf("expected match, ok=%v err=%v", ok, err)
	}

	ok, err = VerifyPassword("kuya-pedro", enc)
	if err != nil || ok {
		t.Fatalf("expected mismatch, ok=%v err=%v", ok, err)
	}
}

func TestHash_Salted(t *testing.T) {
	a, _ := HashPasswordWithIters("same", 10)
	b, _ := HashPasswordWithIters("same", 10)
	if a == b {
		t.Fatalf("two hashes of the same password must differ")
	}
}

func TestVerify_Malformed(t *testing.T) {
	for _, enc := range []string{"", "md5$abc", "pbkdf2_sha256$x$a$b", "pbkdf2_sha256$10$only"} {
		if _, err := VerifyPassword("pw", enc); !errors.Is(err, ErrMalformedHash) {
			t.Fatalf("%q: expected ErrMalformedHash, got %v", enc, err)
		}
	}
}

func TestHash_InvalidIterations(t *testing.T) {
	if _, err := HashPasswordWithIters("pw", 0); err == nil {
		t.Fatalf("expected error for zero iterations")
	}
}
