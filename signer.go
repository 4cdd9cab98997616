package icon

import (
	"encoding/base64"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// The compact format used by the secp256k1 library puts a header byte of
// 27 + recovery id in front of r || s, ICON puts the bare recovery id
// after them.
const (
	compactSigMagicOffset = 27
	maxRecoveryID         = 3
)

// Signature is r (32) || s (32) || recovery id (1).
type Signature [SIGNATURE_LENGTH]byte

func ParseSignature(encoded string) (Signature, error) {
	var sig Signature

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return sig, &InvalidSignatureError{Reason: fmt.Sprintf("failed decoding base64: %s", err)}
	}

	return SignatureFromBytes(raw)
}

func SignatureFromBytes(raw []byte) (Signature, error) {
	var sig Signature
	if len(raw) != SIGNATURE_LENGTH {
		return sig, &InvalidSignatureError{Reason: fmt.Sprintf("expected (%d) bytes, got (%d)", SIGNATURE_LENGTH, len(raw))}
	}
	copy(sig[:], raw)
	return sig, nil
}

func (s Signature) Base64() string {
	return base64.StdEncoding.EncodeToString(s[:])
}

func (s Signature) String() string {
	return s.Base64()
}

func (s Signature) RecoveryID() byte {
	return s[SIGNATURE_LENGTH-1]
}

// Sign produces a recoverable signature over the digest. Nonces are derived
// per RFC 6979 so the same hash and key always give the same bytes.
func Sign(hash Hash, key *PrivateKey) (Signature, error) {
	var sig Signature

	if !key.valid() {
		return sig, &SigningError{Err: ErrInvalidPriv}
	}

	compact := ecdsa.SignCompact(key.key, hash[:], false)
	if len(compact) != SIGNATURE_LENGTH {
		return sig, &SigningError{Err: fmt.Errorf("unexpected compact signature length (%d)", len(compact))}
	}

	copy(sig[:64], compact[1:])
	sig[64] = compact[0] - compactSigMagicOffset

	return sig, nil
}

func RecoverPublicKey(hash Hash, sig Signature) (*PublicKey, error) {
	recoveryID := sig.RecoveryID()
	if recoveryID > maxRecoveryID {
		return nil, &InvalidSignatureError{Reason: fmt.Sprintf("recovery id (%d) out of range", recoveryID)}
	}

	compact := make([]byte, SIGNATURE_LENGTH)
	compact[0] = compactSigMagicOffset + recoveryID
	copy(compact[1:], sig[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, hash[:])
	if err != nil {
		return nil, &InvalidSignatureError{Reason: err.Error()}
	}

	return &PublicKey{key: pub}, nil
}

// Verify never errors, anything that does not recover to pub is false.
func Verify(hash Hash, sig Signature, pub *PublicKey) bool {
	if pub == nil {
		return false
	}

	recovered, err := RecoverPublicKey(hash, sig)
	if err != nil {
		return false
	}

	return recovered.Equal(pub)
}
