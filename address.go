package icon

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Address is a 20 byte account identifier tagged as either an externally
// owned account (hx) or a contract (cx). The zero value renders as the
// all zero EOA hx000...0, which no key derives to. Use IsZero to detect it.
type Address struct {
	isContract bool
	body       [ADDRESS_BODY_LENGTH]byte
}

var ZeroContractAddress = MustParseAddress(ZERO_CONTRACT_ADDRESS)

func ParseAddress(s string) (Address, error) {
	if !IsAddress(s) {
		return Address{}, &AddressFormatError{Value: s}
	}

	var addr Address
	addr.isContract = s[:ADDRESS_PREFIX_LENGTH] == ADDRESS_CONTRACT_PREFIX
	if _, err := hex.Decode(addr.body[:], []byte(s[ADDRESS_PREFIX_LENGTH:])); err != nil {
		return Address{}, &AddressFormatError{Value: s}
	}

	return addr, nil
}

func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

func NewEOAAddress(body [ADDRESS_BODY_LENGTH]byte) Address {
	return Address{body: body}
}

func NewContractAddress(body [ADDRESS_BODY_LENGTH]byte) Address {
	return Address{isContract: true, body: body}
}

func (a Address) Prefix() string {
	if a.isContract {
		return ADDRESS_CONTRACT_PREFIX
	}
	return ADDRESS_EOA_PREFIX
}

func (a Address) String() string {
	return a.Prefix() + hex.EncodeToString(a.body[:])
}

// Body returns the 20 address bytes without the prefix tag.
func (a Address) Body() []byte {
	b := make([]byte, ADDRESS_BODY_LENGTH)
	copy(b, a.body[:])
	return b
}

// Bytes returns the 21 byte binary form used on chain: a leading 0x00 for
// EOAs or 0x01 for contracts followed by the body.
func (a Address) Bytes() []byte {
	b := make([]byte, 0, ADDRESS_BODY_LENGTH+1)
	if a.isContract {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	return append(b, a.body[:]...)
}

func (a Address) IsContract() bool {
	return a.isContract
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) Equal(other Address) bool {
	return a == other
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed unmarshalling address: %w", err)
	}

	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}

	*a = addr
	return nil
}

// Hash is a 32 byte SHA3-256 digest. Transaction hashes come out of
// HashTransaction or are parsed from node responses.
type Hash [HASH_LENGTH]byte

func ParseHash(s string) (Hash, error) {
	var h Hash
	if err := ValidateHash(s); err != nil {
		return h, err
	}

	if _, err := hex.Decode(h[:], []byte(s[2:])); err != nil {
		return h, fmt.Errorf("%w: %q", ErrInvalidHash, s)
	}

	return h, nil
}

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Hash) Bytes() []byte {
	b := make([]byte, HASH_LENGTH)
	copy(b, h[:])
	return b
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed unmarshalling hash: %w", err)
	}

	parsed, err := ParseHash(s)
	if err != nil {
		return err
	}

	*h = parsed
	return nil
}
