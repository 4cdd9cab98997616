package icon

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	PRIVATE_KEY_LENGTH           = 32
	PUBLIC_KEY_UNCOMPRESSED_SIZE = 65
	PUBLIC_KEY_COMPRESSED_SIZE   = 33
)

// PrivateKey wraps a secp256k1 private key. It never renders its own bytes
// through fmt, call Hex or Bytes explicitly when the key has to leave the
// process.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

type PublicKey struct {
	key *secp256k1.PublicKey
}

func GeneratePrivateKey() (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, &SigningError{Err: fmt.Errorf("failed generating private key: %w", err)}
	}
	return &PrivateKey{key: key}, nil
}

// NewPrivateKeyFromBytes rejects anything that is not a 32 byte scalar in
// [1, N-1].
func NewPrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PRIVATE_KEY_LENGTH {
		return nil, &SigningError{Err: fmt.Errorf("%w: expected (%d), got (%d)", ErrPrivLength, PRIVATE_KEY_LENGTH, len(b))}
	}

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow || scalar.IsZero() {
		return nil, &SigningError{Err: fmt.Errorf("private key is not a valid secp256k1 scalar")}
	}

	return &PrivateKey{key: secp256k1.NewPrivateKey(&scalar)}, nil
}

func NewPrivateKeyFromHex(s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, &SigningError{Err: fmt.Errorf("failed decoding private key hex: %w", err)}
	}
	return NewPrivateKeyFromBytes(b)
}

func (p *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{key: p.key.PubKey()}
}

// Bytes returns the 32 byte big endian scalar.
func (p *PrivateKey) Bytes() []byte {
	return p.key.Serialize()
}

func (p *PrivateKey) Hex() string {
	return hex.EncodeToString(p.Bytes())
}

// Zero clears the key material. The key is unusable afterwards.
func (p *PrivateKey) Zero() {
	if p != nil && p.key != nil {
		p.key.Zero()
	}
}

func (p *PrivateKey) String() string {
	return "PrivateKey(redacted)"
}

func (p *PrivateKey) valid() bool {
	return p != nil && p.key != nil && !p.key.Key.IsZero()
}

// NewPublicKeyFromBytes accepts both the 65 byte uncompressed and 33 byte
// compressed encodings.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	if len(b) != PUBLIC_KEY_UNCOMPRESSED_SIZE && len(b) != PUBLIC_KEY_COMPRESSED_SIZE {
		return nil, fmt.Errorf("%w: unexpected length (%d)", ErrInvalidPub, len(b))
	}

	key, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPub, err)
	}

	return &PublicKey{key: key}, nil
}

func NewPublicKeyFromHex(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed decoding public key hex: %w", err)
	}
	return NewPublicKeyFromBytes(b)
}

func (p *PublicKey) Bytes() []byte {
	return p.key.SerializeUncompressed()
}

func (p *PublicKey) CompressedBytes() []byte {
	return p.key.SerializeCompressed()
}

func (p *PublicKey) Hex() string {
	return hex.EncodeToString(p.Bytes())
}

func (p *PublicKey) Equal(other *PublicKey) bool {
	if p == nil || other == nil {
		return false
	}
	return p.key.IsEqual(other.key)
}

// Address derives the hx address: the last 20 bytes of the SHA3-256 digest
// of the uncompressed key without its 0x04 marker.
func (p *PublicKey) Address() Address {
	digest := hashSha3(p.Bytes()[1:])

	var body [ADDRESS_BODY_LENGTH]byte
	copy(body[:], digest[len(digest)-ADDRESS_BODY_LENGTH:])

	return NewEOAAddress(body)
}
