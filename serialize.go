package icon

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Mapping is a transaction field mapping. Values are strings, Address,
// Hash, integers, bool, []byte, nested mappings or sequences of those. A nil
// value means the field is absent.
type Mapping map[string]interface{}

// Copy returns a deep copy with absent (nil) fields dropped.
func (m Mapping) Copy() Mapping {
	if m == nil {
		return nil
	}

	out := make(Mapping, len(m))
	for k, v := range m {
		if isAbsent(v) {
			continue
		}
		out[k] = copyValue(v)
	}
	return out
}

// Without returns a copy of m without the named top level keys.
func (m Mapping) Without(keys ...string) Mapping {
	out := m.Copy()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Escaped in a single pass so that no user supplied string can forge a
// separator or a container boundary.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`{`, `\{`,
	`}`, `\}`,
	`[`, `\[`,
	`]`, `\]`,
)

const nullToken = `\0`

// SerializeTransaction renders m as the canonical icx_sendTransaction
// preimage. The top level signature field is never part of it.
func SerializeTransaction(m Mapping) (string, error) {
	return SerializeWithPrefix(SEND_TRANSACTION_PREFIX, m)
}

func SerializeWithPrefix(prefix string, m Mapping) (string, error) {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('.')

	if err := writeMappingBody(&b, m, true, ""); err != nil {
		return "", err
	}

	return b.String(), nil
}

// HashTransaction is the SHA3-256 digest of the canonical serialization.
// This is both the transaction hash the node reports and the digest that
// gets signed.
func HashTransaction(m Mapping) (Hash, error) {
	serialized, err := SerializeTransaction(m)
	if err != nil {
		return Hash{}, err
	}

	var h Hash
	copy(h[:], hashSha3([]byte(serialized)))
	return h, nil
}

func writeMappingBody(b *strings.Builder, m map[string]interface{}, topLevel bool, path string) error {
	keys := make([]string, 0, len(m))
	for k, v := range m {
		if topLevel && k == FIELD_SIGNATURE {
			continue
		}
		if isAbsent(v) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(k)
		b.WriteByte('.')
		if err := writeValue(b, m[k], joinPath(path, k)); err != nil {
			return err
		}
	}

	return nil
}

func writeSequence(b *strings.Builder, items []interface{}, path string) error {
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteByte('.')
		}
		if err := writeValue(b, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	b.WriteByte(']')
	return nil
}

func writeValue(b *strings.Builder, v interface{}, path string) error {
	if isAbsent(v) {
		// Only reachable for sequence elements, absent mapping fields are
		// skipped before this point.
		b.WriteString(nullToken)
		return nil
	}

	switch v := v.(type) {
	case string:
		b.WriteString(escaper.Replace(v))
		return nil
	case Mapping:
		return writeNested(b, v, path)
	case map[string]interface{}:
		return writeNested(b, v, path)
	case []interface{}:
		return writeSequence(b, v, path)
	case []string:
		items := make([]interface{}, len(v))
		for i, s := range v {
			items[i] = s
		}
		return writeSequence(b, items, path)
	case []Mapping:
		items := make([]interface{}, len(v))
		for i, m := range v {
			items[i] = m
		}
		return writeSequence(b, items, path)
	}

	s, err := canonicalScalar(v, path)
	if err != nil {
		return err
	}
	b.WriteString(s)
	return nil
}

func writeNested(b *strings.Builder, m map[string]interface{}, path string) error {
	b.WriteByte('{')
	if err := writeMappingBody(b, m, false, path); err != nil {
		return err
	}
	b.WriteByte('}')
	return nil
}

// canonicalScalar renders the non-string scalars in their wire form.
// Strings are returned unescaped, escaping belongs to the serializer only.
func canonicalScalar(v interface{}, path string) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case Address:
		return v.String(), nil
	case *Address:
		return v.String(), nil
	case Hash:
		return v.String(), nil
	case *Hash:
		return v.String(), nil
	case bool:
		if v {
			return "0x1", nil
		}
		return "0x0", nil
	case []byte:
		return bytesToHex(v), nil
	case *big.Int:
		return hexInt(v, path)
	case int:
		return hexInt(big.NewInt(int64(v)), path)
	case int32:
		return hexInt(big.NewInt(int64(v)), path)
	case int64:
		return hexInt(big.NewInt(v), path)
	case uint:
		return hexInt(new(big.Int).SetUint64(uint64(v)), path)
	case uint32:
		return hexInt(new(big.Int).SetUint64(uint64(v)), path)
	case uint64:
		return hexInt(new(big.Int).SetUint64(v), path)
	}

	return "", fmt.Errorf("%w: %T at %q", ErrUnsupportedValue, v, path)
}

func hexInt(i *big.Int, path string) (string, error) {
	if i.Sign() < 0 {
		return "", fmt.Errorf("%w: %q", ErrNegativeValue, path)
	}
	return ToHexNumber(i), nil
}

// normalizeValue converts v into the exact JSON shape that will be sent:
// scalars become their canonical strings, mappings lose absent fields. A
// normalized mapping serializes and marshals to the same content, which is
// what lets the node reproduce the signed hash.
func normalizeValue(v interface{}, path string) (interface{}, error) {
	if isAbsent(v) {
		return nil, nil
	}

	switch v := v.(type) {
	case Mapping:
		return normalizeMapping(v, path)
	case map[string]interface{}:
		return normalizeMapping(v, path)
	case []interface{}:
		return normalizeSequence(v, path)
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, nil
	case []Mapping:
		items := make([]interface{}, len(v))
		for i, m := range v {
			items[i] = m
		}
		return normalizeSequence(items, path)
	}

	return canonicalScalar(v, path)
}

func normalizeMapping(m map[string]interface{}, path string) (Mapping, error) {
	out := make(Mapping, len(m))
	for k, v := range m {
		if isAbsent(v) {
			continue
		}
		nv, err := normalizeValue(v, joinPath(path, k))
		if err != nil {
			return nil, err
		}
		out[k] = nv
	}
	return out, nil
}

func normalizeSequence(items []interface{}, path string) ([]interface{}, error) {
	out := make([]interface{}, len(items))
	for i, item := range items {
		nv, err := normalizeValue(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = nv
	}
	return out, nil
}

func isAbsent(v interface{}) bool {
	switch v := v.(type) {
	case nil:
		return true
	case *big.Int:
		return v == nil
	case *Address:
		return v == nil
	case *Hash:
		return v == nil
	case Mapping:
		return v == nil
	case map[string]interface{}:
		return v == nil
	case []interface{}:
		return v == nil
	case []string:
		return v == nil
	case []Mapping:
		return v == nil
	case []byte:
		return v == nil
	}
	return false
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
