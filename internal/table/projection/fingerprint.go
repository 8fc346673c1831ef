package projection

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Fingerprint returns a hex-encoded SHA256 digest of the canonical JSON
// serialization of v. encoding/json sorts map keys, so structurally equal
// inputs always produce the same digest regardless of insertion order.
func Fingerprint(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Rows hold scalar display values, which always marshal. Fall back
		// to the formatted value so an exotic input degrades to a correct
		// (if slower-to-collide-check) fingerprint rather than an error.
		data = fmt.Appendf(nil, "%#v", v)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
