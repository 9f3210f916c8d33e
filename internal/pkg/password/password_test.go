package password

import (
	"strings"
	"testing"
)

// testParams keeps the KDF cheap enough for unit tests.
var testParams = Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHashVerify_RoundTrip(t *testing.T) {
	h := NewHasher(testParams)

	hash, err := h.Hash("Secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected PHC format, got %q", hash)
	}

	ok, err := h.Verify(hash, "Secret123")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatalf("correct password rejected")
	}

	ok, err = h.Verify(hash, "Secret124")
	if err != nil {
		t.Fatalf("verify wrong password must not error: %v", err)
	}
	if ok {
		t.Fatalf("wrong password accepted")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	h := NewHasher(testParams)

	a, _ := h.Hash("same-input")
	b, _ := h.Hash("same-input")
	if a == b {
		t.Fatalf("identical hashes for two calls, salt is not random")
	}
	// Both must still verify.
	for _, hash := range []string{a, b} {
		if ok, err := h.Verify(hash, "same-input"); err != nil || !ok {
			t.Fatalf("verify(%q) = %v, %v", hash, ok, err)
		}
	}
}

func TestVerify_SelfDescribing(t *testing.T) {
	// A hash produced with one cost must verify under a hasher configured
	// with another: parameters come from the hash itself.
	strong := NewHasher(Params{Memory: 16 * 1024, Time: 2, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	weak := NewHasher(testParams)

	hash, err := strong.Hash("portable")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	ok, err := weak.Verify(hash, "portable")
	if err != nil || !ok {
		t.Fatalf("cross-config verify failed: %v, %v", ok, err)
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	h := NewHasher(testParams)

	cases := []string{
		"",
		"plainly-not-a-hash",
		"$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=999$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$",
	}
	for _, bad := range cases {
		if _, err := h.Verify(bad, "whatever"); err == nil {
			t.Fatalf("Verify(%q) expected error", bad)
		}
	}
}

func TestNewHasher_Defaults(t *testing.T) {
	h := NewHasher(Params{})
	if h.params != DefaultParams() {
		t.Fatalf("zero params must fall back to defaults, got %+v", h.params)
	}
}
