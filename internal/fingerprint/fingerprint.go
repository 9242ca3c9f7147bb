// Package fingerprint computes content hashes of serialized passages, so two
// collections can be compared by their encoded records.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/passage/core/passage"
)

// Fingerprint holds both SHA-256 and BLAKE3 hashes of an encoded record.
type Fingerprint struct {
	SHA256 string `json:"sha256"`
	BLAKE3 string `json:"blake3"`
}

// Bytes hashes data.
func Bytes(data []byte) Fingerprint {
	s := sha256.Sum256(data)
	b3 := blake3.Sum256(data)
	return Fingerprint{
		SHA256: hex.EncodeToString(s[:]),
		BLAKE3: hex.EncodeToString(b3[:]),
	}
}

// Collection encodes c as its JSON record and hashes the result. The encoded
// bytes are returned alongside so callers can print what was hashed.
func Collection(c *passage.Collection) (Fingerprint, []byte, error) {
	data, err := json.Marshal(c.ToRecord())
	if err != nil {
		return Fingerprint{}, nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return Bytes(data), data, nil
}

// Range encodes r as its JSON record and hashes the result.
func Range(r *passage.Range) (Fingerprint, error) {
	data, err := json.Marshal(r.ToRecord())
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to encode range: %w", err)
	}
	return Bytes(data), nil
}

// Verify reports whether data hashes to fp. Only the hashes present in fp
// are compared; an empty fingerprint never verifies.
func Verify(data []byte, fp Fingerprint) bool {
	if fp.SHA256 == "" && fp.BLAKE3 == "" {
		return false
	}
	got := Bytes(data)
	if fp.SHA256 != "" && fp.SHA256 != got.SHA256 {
		return false
	}
	if fp.BLAKE3 != "" && fp.BLAKE3 != got.BLAKE3 {
		return false
	}
	return true
}

// Short returns the first 12 hex digits of the BLAKE3 hash.
func (f Fingerprint) Short() string {
	if len(f.BLAKE3) < 12 {
		return f.BLAKE3
	}
	return f.BLAKE3[:12]
}
