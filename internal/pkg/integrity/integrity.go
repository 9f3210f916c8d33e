// Package integrity computes the keyed digest that protects account records
// against out-of-band tampering.
package integrity

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// sep delimits the digest inputs so that adjacent fields cannot be reshuffled
// without changing the digest ("ab"+"c" vs "a"+"bc").
const sep = "\x1f"

// Hasher derives digests keyed by a process-wide secret. The secret is loaded
// once at startup and never persisted alongside the records it protects; if it
// changes, every stored digest becomes unverifiable and all accounts will be
// treated as tampered on their next login.
type Hasher struct {
	secret string
}

// NewHasher returns a Hasher keyed by secret.
func NewHasher(secret string) *Hasher {
	return &Hasher{secret: secret}
}

// Digest computes the integrity digest over the covered account fields.
// Deterministic: identical inputs always yield the identical hex digest.
//
// The construction is concatenate-then-hash (secret first), kept for
// compatibility with digests already at rest. It is not a proper MAC —
// SHA-256 is length-extendable — so do not swap in HMAC here without a
// stakeholder decision and a stored-digest migration.
func (h *Hasher) Digest(username, passwordHash, createdAt, status string) string {
	sum := sha256.Sum256([]byte(h.secret + sep + username + sep + passwordHash + sep + createdAt + sep + status))
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the digest from the given fields and compares it to the
// stored value in constant time.
func (h *Hasher) Verify(stored, username, passwordHash, createdAt, status string) bool {
	computed := h.Digest(username, passwordHash, createdAt, status)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(stored)) == 1
}
