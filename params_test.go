package icon

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams(t *testing.T) {
	params := NewParams().
		AddInt("big", big.NewInt(255)).
		AddInt("neg", big.NewInt(-16)).
		AddInt64("small", 0).
		AddUint64("u", 10).
		AddString("s", "a.b").
		AddAddress("addr", MustParseAddress(testToAddr)).
		AddBool("yes", true).
		AddBool("no", false).
		AddBytes("raw", []byte{0x01, 0xff}).
		AddMapping("nested", Mapping{"k": "v"}).
		AddList("list", "a", Mapping{"k": "v"})

	assert.Equal(t, Mapping{
		"big":    "0xff",
		"neg":    "-0x10",
		"small":  "0x0",
		"u":      "0xa",
		"s":      "a.b",
		"addr":   testToAddr,
		"yes":    "0x1",
		"no":     "0x0",
		"raw":    "0x01ff",
		"nested": Mapping{"k": "v"},
		"list":   []interface{}{"a", Mapping{"k": "v"}},
	}, params.Mapping())
	assert.Equal(t, 11, params.Len())

	serialized, err := SerializeTransaction(NewParams().AddString("s", "a.b").AddInt("n", big.NewInt(-1)).Mapping())
	assert.NoError(t, err)
	assert.Equal(t, `icx_sendTransaction.n.-0x1.s.a\.b`, serialized)
}

func TestParamsEmpty(t *testing.T) {
	var nilParams *Params
	assert.Nil(t, nilParams.Mapping())
	assert.Equal(t, 0, nilParams.Len())

	assert.Nil(t, NewParams().Mapping())

	// Nil values count as absent.
	p := NewParams().AddInt("n", nil).AddBytes("b", nil)
	assert.Nil(t, p.Mapping())

	// Overwrite keeps the last value.
	p = NewParams().AddString("k", "1").AddString("k", "2")
	assert.Equal(t, Mapping{"k": "2"}, p.Mapping())

	// A zero value Params is usable.
	var zero Params
	zero.AddString("k", "v")
	assert.Equal(t, Mapping{"k": "v"}, zero.Mapping())
}

func TestParamsListIntegers(t *testing.T) {
	p := NewParams().
		AddInt64("x", -1).
		AddList("xs", big.NewInt(-1), int64(-16), 2, (*big.Int)(nil), "s")

	assert.Equal(t, Mapping{
		"x":  "-0x1",
		"xs": []interface{}{"-0x1", "-0x10", "0x2", nil, "s"},
	}, p.Mapping())

	tx, err := NewCallTx(testFromAddr, testContract, "set", p.Mapping(), big.NewInt(100), big.NewInt(1))
	require.NoError(t, err)

	serialized, err := SerializeTransaction(tx.Mapping()[FIELD_DATA].(Mapping))
	require.NoError(t, err)
	assert.Contains(t, serialized, `xs.[-0x1.-0x10.0x2.\0.s]`)
}
