package icon

import (
	"math/big"
)

// Params collects the named arguments of a contract call or deploy. Every
// value is stored in its wire form so the resulting Mapping can go straight
// into TxConfig.Params or CallRequest.Params.
//
// Order of Add calls does not matter, the serializer sorts keys. Adding the
// same name twice overwrites the earlier value.
type Params struct {
	values Mapping
}

func NewParams() *Params {
	return &Params{values: Mapping{}}
}

func (p *Params) set(name string, val interface{}) *Params {
	if p.values == nil {
		p.values = Mapping{}
	}
	p.values[name] = val
	return p
}

// Contract parameters may be negative, unlike transaction fields. Negative
// integers are written as -0x followed by the magnitude.
func (p *Params) AddInt(name string, val *big.Int) *Params {
	if val == nil {
		return p.set(name, nil)
	}
	return p.set(name, signedHex(val))
}

func (p *Params) AddInt64(name string, val int64) *Params {
	return p.AddInt(name, big.NewInt(val))
}

func (p *Params) AddUint64(name string, val uint64) *Params {
	return p.AddInt(name, new(big.Int).SetUint64(val))
}

func (p *Params) AddString(name, val string) *Params {
	return p.set(name, val)
}

func (p *Params) AddAddress(name string, addr Address) *Params {
	return p.set(name, addr.String())
}

func (p *Params) AddBool(name string, val bool) *Params {
	if val {
		return p.set(name, "0x1")
	}
	return p.set(name, "0x0")
}

func (p *Params) AddBytes(name string, val []byte) *Params {
	if val == nil {
		return p.set(name, nil)
	}
	return p.set(name, bytesToHex(val))
}

// AddMapping stores a nested struct parameter. Its values go through the
// same normalization as a transaction, so the supported value types are
// those of Mapping.
func (p *Params) AddMapping(name string, val Mapping) *Params {
	return p.set(name, val.Copy())
}

// AddList stores a sequence parameter. Integer elements are written the
// way AddInt writes them, so they may be negative too.
func (p *Params) AddList(name string, vals ...interface{}) *Params {
	items := make([]interface{}, len(vals))
	for i, v := range vals {
		items[i] = listValue(v)
	}
	return p.set(name, items)
}

func listValue(v interface{}) interface{} {
	switch v := v.(type) {
	case *big.Int:
		if v == nil {
			return nil
		}
		return signedHex(v)
	case int:
		return signedHex(big.NewInt(int64(v)))
	case int32:
		return signedHex(big.NewInt(int64(v)))
	case int64:
		return signedHex(big.NewInt(v))
	}
	return copyValue(v)
}

func signedHex(val *big.Int) string {
	if val.Sign() < 0 {
		return "-" + ToHexNumber(new(big.Int).Neg(val))
	}
	return ToHexNumber(val)
}

// Mapping returns a copy of the collected parameters. A Params with no
// values yields nil, which the builder treats as "no params".
func (p *Params) Mapping() Mapping {
	if p == nil {
		return nil
	}
	m := p.values.Copy()
	if len(m) == 0 {
		return nil
	}
	return m
}

func (p *Params) Len() int {
	return len(p.Mapping())
}
