package icon

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/sha3"
)

func hashSha3(payload []byte) []byte {
	hasher := sha3.New256()
	hasher.Write(payload)
	return hasher.Sum(nil)
}

// Timestamps on ICON transactions are in microseconds.
func currentTimestamp() int64 {
	return time.Now().UnixMicro()
}

func bytesToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// copyValue deep copies the container types a Mapping can hold so that
// callers never share mutable state with a built transaction.
func copyValue(v interface{}) interface{} {
	switch v := v.(type) {
	case Mapping:
		return v.Copy()
	case map[string]interface{}:
		return Mapping(v).Copy()
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = copyValue(e)
		}
		return out
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []Mapping:
		out := make([]Mapping, len(v))
		for i, e := range v {
			out[i] = e.Copy()
		}
		return out
	case []byte:
		out := make([]byte, len(v))
		copy(out, v)
		return out
	case *big.Int:
		if v == nil {
			return nil
		}
		return new(big.Int).Set(v)
	default:
		return v
	}
}

func decodeHexBytes(s string) ([]byte, error) {
	if len(s) < 2 || s[:2] != "0x" {
		return nil, fmt.Errorf("%w: missing 0x prefix: %q", ErrUnsupportedValue, s)
	}
	return hex.DecodeString(s[2:])
}
