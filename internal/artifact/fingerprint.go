package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// LeafDependencyHash is the fixed sentinel folded into the fingerprint of the
// leaf kind, which has no dependency. Using a constant rather than the empty
// string keeps "no dependency" distinguishable from "dependency with an empty
// hash", which would indicate a bug upstream.
const LeafDependencyHash = "leaf"

// Config holds the declared constructor parameters of an implementation.
// Keys are normalized to a canonical, order-independent encoding before
// hashing, so two configs with the same entries always fingerprint
// identically regardless of insertion order.
type Config map[string]any

// Clone returns a shallow copy of the config. A nil config clones to nil.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// CanonicalJSON encodes the config deterministically: keys sorted, no
// incidental whitespace. encoding/json already sorts map keys at every
// nesting level, which is the property the fingerprint relies on.
func (c Config) CanonicalJSON() ([]byte, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(map[string]any(c))
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// Keys returns the config keys sorted alphabetically.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fingerprint computes the deterministic content identity of an artifact from
// its registered name, canonical configuration, and the hash of its resolved
// dependency (LeafDependencyHash for the leaf kind). Extra material — such as
// a digest of materialized content for dataset kinds — may be appended by the
// caller.
//
// Determinism rules:
//   - Configuration is encoded canonically (sorted keys).
//   - Every field is length-prefixed to avoid concatenation ambiguity.
//   - The result is a hex-encoded sha256, stable across processes and
//     architectures.
func Fingerprint(registeredName string, cfg Config, dependencyHash string, extra ...[]byte) (string, error) {
	canonical, err := cfg.CanonicalJSON()
	if err != nil {
		return "", err
	}

	h := sha256.New()
	writeField := func(data []byte) {
		var lengthBytes [8]byte
		length := uint64(len(data))
		for i := 0; i < 8; i++ {
			lengthBytes[i] = byte(length >> (56 - 8*i))
		}
		h.Write(lengthBytes[:])
		h.Write(data)
	}

	writeField([]byte(registeredName))
	writeField(canonical)
	writeField([]byte(dependencyHash))
	for _, e := range extra {
		writeField(e)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
