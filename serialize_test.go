package icon

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testFromAddr = "hxbe258ceb872e08851f1f59694dac2558708ece11"
	testToAddr   = "hx5bfdb090f43a808005ffc27c25b213145e80b7cd"

	referenceSerialized = "icx_sendTransaction.from.hxbe258ceb872e08851f1f59694dac2558708ece11.nid.0x1.nonce.0x1.stepLimit.0x12345.timestamp.0x563a6cf330136.to.hx5bfdb090f43a808005ffc27c25b213145e80b7cd.value.0xde0b6b3a7640000.version.0x3"
	referenceHash       = "0xf0c68a4f588233d722fff7b5a738ffa6b56ad4cb62ad6bc9fb3e5facb0c25059"
)

func referenceMapping() Mapping {
	return Mapping{
		"version":   "0x3",
		"from":      testFromAddr,
		"to":        testToAddr,
		"value":     "0xde0b6b3a7640000",
		"stepLimit": "0x12345",
		"timestamp": "0x563a6cf330136",
		"nid":       "0x1",
		"nonce":     "0x1",
	}
}

func TestSerializeReferenceVector(t *testing.T) {
	serialized, err := SerializeTransaction(referenceMapping())
	require.NoError(t, err)
	assert.Equal(t, referenceSerialized, serialized)

	hash, err := HashTransaction(referenceMapping())
	require.NoError(t, err)
	assert.Equal(t, referenceHash, hash.String())
}

func TestSerializeTypedValues(t *testing.T) {
	oneIcx, _ := new(big.Int).SetString("1000000000000000000", 10)

	m := Mapping{
		"version":   "0x3",
		"from":      MustParseAddress(testFromAddr),
		"to":        MustParseAddress(testToAddr),
		"value":     oneIcx,
		"stepLimit": 0x12345,
		"timestamp": int64(0x563a6cf330136),
		"nid":       uint64(1),
		"nonce":     big.NewInt(1),
	}

	serialized, err := SerializeTransaction(m)
	require.NoError(t, err)
	assert.Equal(t, referenceSerialized, serialized)
}

func TestSerializeNested(t *testing.T) {
	m := Mapping{
		"to":       "cx0000000000000000000000000000000000000001",
		"dataType": "call",
		"data": Mapping{
			"method": "transfer",
			"params": map[string]interface{}{
				"value": "0x1",
				"to":    testToAddr,
			},
		},
	}

	serialized, err := SerializeTransaction(m)
	require.NoError(t, err)
	assert.Equal(t,
		"icx_sendTransaction.data.{method.transfer.params.{to.hx5bfdb090f43a808005ffc27c25b213145e80b7cd.value.0x1}}.dataType.call.to.cx0000000000000000000000000000000000000001",
		serialized,
	)
}

func TestSerializeValues(t *testing.T) {
	var valueTests = []struct {
		name     string
		input    Mapping
		expected string
	}{
		{
			"escaping",
			Mapping{"data": `a.b\c{d}[e]`},
			`icx_sendTransaction.data.a\.b\\c\{d\}\[e\]`,
		},
		{
			"escaped backslash before dot",
			Mapping{"data": `\.`},
			`icx_sendTransaction.data.\\\.`,
		},
		{
			"sequence with null",
			Mapping{"list": []interface{}{"a", nil, Mapping{"k": "v"}}},
			`icx_sendTransaction.list.[a.\0.{k.v}]`,
		},
		{
			"string sequence",
			Mapping{"list": []string{"x.y", "z"}},
			`icx_sendTransaction.list.[x\.y.z]`,
		},
		{
			"absent field omitted",
			Mapping{"a": "1", "b": nil, "c": (*big.Int)(nil)},
			`icx_sendTransaction.a.1`,
		},
		{
			"typed nil containers omitted",
			Mapping{
				"x": "1",
				"m": Mapping(nil),
				"p": map[string]interface{}(nil),
				"l": []interface{}(nil),
				"s": []string(nil),
				"b": []byte(nil),
				"h": (*Hash)(nil),
			},
			`icx_sendTransaction.x.1`,
		},
		{
			"empty containers kept",
			Mapping{"p": map[string]interface{}{}, "l": []interface{}{}, "b": []byte{}},
			`icx_sendTransaction.b.0x.l.[].p.{}`,
		},
		{
			"empty string kept",
			Mapping{"a": "", "b": "2"},
			`icx_sendTransaction.a..b.2`,
		},
		{
			"signature excluded",
			Mapping{"a": "1", "signature": "c2ln"},
			`icx_sendTransaction.a.1`,
		},
		{
			"nested signature kept",
			Mapping{"data": Mapping{"signature": "x"}},
			`icx_sendTransaction.data.{signature.x}`,
		},
		{
			"bool and bytes",
			Mapping{"flag": true, "off": false, "raw": []byte{0xca, 0xfe}},
			`icx_sendTransaction.flag.0x1.off.0x0.raw.0xcafe`,
		},
		{
			"byte order of keys",
			Mapping{"b": "1", "B": "2", "a": "3", "_": "4"},
			`icx_sendTransaction.B.2._.4.a.3.b.1`,
		},
	}

	for _, tc := range valueTests {
		t.Run(tc.name, func(t *testing.T) {
			serialized, err := SerializeTransaction(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, serialized)
		})
	}
}

func TestSerializeErrors(t *testing.T) {
	_, err := SerializeTransaction(Mapping{"value": 1.5})
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	_, err = SerializeTransaction(Mapping{"data": Mapping{"params": Mapping{"n": big.NewInt(-1)}}})
	assert.ErrorIs(t, err, ErrNegativeValue)
	assert.Contains(t, err.Error(), "data.params.n")
}

func TestCanonicalStability(t *testing.T) {
	// Go randomizes map iteration, so building the same mapping repeatedly
	// with keys inserted in opposite orders covers insertion order.
	keys := []string{"version", "from", "to", "value", "stepLimit", "timestamp", "nid", "nonce"}
	ref := referenceMapping()

	for i := 0; i < 50; i++ {
		forward := Mapping{}
		for _, k := range keys {
			forward[k] = ref[k]
		}
		backward := Mapping{}
		for j := len(keys) - 1; j >= 0; j-- {
			backward[keys[j]] = ref[keys[j]]
		}

		a, err := SerializeTransaction(forward)
		require.NoError(t, err)
		b, err := SerializeTransaction(backward)
		require.NoError(t, err)
		assert.Equal(t, a, b)

		ha, err := HashTransaction(forward)
		require.NoError(t, err)
		hb, err := HashTransaction(backward)
		require.NoError(t, err)
		assert.Equal(t, ha, hb)
	}
}

func TestTamperSensitivity(t *testing.T) {
	original, err := HashTransaction(referenceMapping())
	require.NoError(t, err)

	for field := range referenceMapping() {
		tampered := referenceMapping()
		tampered[field] = tampered[field].(string) + "0"

		hash, err := HashTransaction(tampered)
		require.NoError(t, err)
		assert.NotEqual(t, original, hash, "changing %s did not change the hash", field)
	}
}

func TestMappingCopy(t *testing.T) {
	inner := Mapping{"k": "v"}
	m := Mapping{"inner": inner, "list": []interface{}{"a"}, "gone": nil}

	c := m.Copy()
	_, hasGone := c["gone"]
	assert.False(t, hasGone)

	inner["k"] = "changed"
	m["list"].([]interface{})[0] = "b"

	assert.Equal(t, "v", c["inner"].(Mapping)["k"])
	assert.Equal(t, "a", c["list"].([]interface{})[0])

	without := m.Without("inner")
	_, hasInner := without["inner"]
	assert.False(t, hasInner)
	_, hasInner = m["inner"]
	assert.True(t, hasInner)
}

func TestSerializeWithPrefix(t *testing.T) {
	serialized, err := SerializeWithPrefix("icx_call", Mapping{"to": "cx0000000000000000000000000000000000000001"})
	require.NoError(t, err)
	assert.Equal(t, "icx_call.to.cx0000000000000000000000000000000000000001", serialized)
}
