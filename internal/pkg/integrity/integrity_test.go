package integrity

import "testing"

func TestDigest_Deterministic(t *testing.T) {
	h := NewHasher("unit-secret")

	a := h.Digest("alice", "hash", "2024-01-01T00:00:00.000Z", `{"status":"ACTIVE"}`)
	b := h.Digest("alice", "hash", "2024-01-01T00:00:00.000Z", `{"status":"ACTIVE"}`)
	if a != b {
		t.Fatalf("digest not deterministic: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256 (64 chars), got %d", len(a))
	}
}

func TestDigest_SensitiveToEveryField(t *testing.T) {
	h := NewHasher("unit-secret")
	base := h.Digest("alice", "hash", "2024-01-01T00:00:00.000Z", `{"status":"ACTIVE"}`)

	variants := map[string]string{
		"username": h.Digest("alicf", "hash", "2024-01-01T00:00:00.000Z", `{"status":"ACTIVE"}`),
		"password": h.Digest("alice", "hasi", "2024-01-01T00:00:00.000Z", `{"status":"ACTIVE"}`),
		"created":  h.Digest("alice", "hash", "2024-01-01T00:00:00.001Z", `{"status":"ACTIVE"}`),
		"status":   h.Digest("alice", "hash", "2024-01-01T00:00:00.000Z", `{"status":"INACTIVE"}`),
		"secret":   NewHasher("other-secret").Digest("alice", "hash", "2024-01-01T00:00:00.000Z", `{"status":"ACTIVE"}`),
	}
	for field, d := range variants {
		if d == base {
			t.Fatalf("changing %s did not change the digest", field)
		}
	}
}

func TestDigest_FieldBoundaries(t *testing.T) {
	h := NewHasher("s")
	// Moving a character across a field boundary must change the digest.
	if h.Digest("ab", "c", "t", "x") == h.Digest("a", "bc", "t", "x") {
		t.Fatalf("field boundaries are ambiguous")
	}
}

func TestVerify(t *testing.T) {
	h := NewHasher("unit-secret")
	d := h.Digest("bob", "ph", "2024-06-01T10:00:00.000Z", `{"status":"ACTIVE","admin":false,"vip":false,"verified":false}`)

	if !h.Verify(d, "bob", "ph", "2024-06-01T10:00:00.000Z", `{"status":"ACTIVE","admin":false,"vip":false,"verified":false}`) {
		t.Fatalf("verify rejected a correct digest")
	}
	if h.Verify(d, "bob", "ph2", "2024-06-01T10:00:00.000Z", `{"status":"ACTIVE","admin":false,"vip":false,"verified":false}`) {
		t.Fatalf("verify accepted a tampered password hash")
	}
	if h.Verify("", "bob", "ph", "2024-06-01T10:00:00.000Z", `{}`) {
		t.Fatalf("verify accepted an empty stored digest")
	}
}
