package icon

import (
	"fmt"
)

// SignedTransaction is a transaction together with the signature over its
// hash. The fields are frozen at signing time, every accessor returns a
// copy. To change a field, build and sign a new transaction.
type SignedTransaction struct {
	fields    Mapping
	hash      Hash
	signature Signature
	from      Address
}

// NewSignedTransaction validates tx, hashes its canonical form and signs
// the hash with acc. It either returns a complete SignedTransaction or an
// error, never a partially signed value.
//
// Validation failures are returned as *ValidationError, key problems as
// *SigningError.
func NewSignedTransaction(tx *Transaction, acc *Account) (*SignedTransaction, error) {
	if err := tx.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	if acc == nil {
		return nil, &SigningError{Err: ErrAccountNotFound}
	}

	// Signing for an address other than the sender produces a signature the
	// node rejects, so catch it here.
	if !tx.From().Equal(acc.Address()) {
		return nil, &SigningError{Err: fmt.Errorf("account %s cannot sign for %s", acc.Address(), tx.From())}
	}

	fields := tx.Mapping()

	hash, err := HashTransaction(fields)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}

	sig, err := acc.Sign(hash)
	if err != nil {
		return nil, err
	}

	fields[FIELD_SIGNATURE] = sig.Base64()

	return &SignedTransaction{
		fields:    fields,
		hash:      hash,
		signature: sig,
		from:      acc.Address(),
	}, nil
}

func (s *SignedTransaction) Hash() Hash {
	return s.hash
}

func (s *SignedTransaction) Signature() Signature {
	return s.signature
}

func (s *SignedTransaction) From() Address {
	return s.from
}

// Payload is the complete icx_sendTransaction params object, signature
// included.
func (s *SignedTransaction) Payload() Mapping {
	return s.fields.Copy()
}

// VerifyPayload checks a signed payload the way a node would: re-hash it
// without its signature, recover the signer and compare the derived address
// with the from field. It returns the hash on success.
func VerifyPayload(payload Mapping) (Hash, error) {
	encoded, ok := payload[FIELD_SIGNATURE].(string)
	if !ok {
		return Hash{}, &MissingFieldError{Field: FIELD_SIGNATURE}
	}

	sig, err := ParseSignature(encoded)
	if err != nil {
		return Hash{}, err
	}

	hash, err := HashTransaction(payload)
	if err != nil {
		return Hash{}, fmt.Errorf("failed hashing payload: %w", err)
	}

	pub, err := RecoverPublicKey(hash, sig)
	if err != nil {
		return Hash{}, err
	}

	from, _ := payload[FIELD_FROM].(string)
	if recovered := pub.Address().String(); recovered != from {
		return Hash{}, &InvalidSignatureError{Reason: fmt.Sprintf("signer %s does not match from %q", recovered, from)}
	}

	return hash, nil
}

// CheckHash compares the hash of payload with the hash a node reported for
// it.
func CheckHash(payload Mapping, expected Hash) error {
	actual, err := HashTransaction(payload)
	if err != nil {
		return fmt.Errorf("failed hashing payload: %w", err)
	}

	if actual != expected {
		return &HashMismatchError{Expected: expected, Actual: actual}
	}

	return nil
}

// SignedTransactionFromPayload rebuilds a SignedTransaction from a payload
// produced elsewhere, for example one read from a file. The payload is
// validated and its signature checked against the from address.
func SignedTransactionFromPayload(payload Mapping) (*SignedTransaction, error) {
	tx, err := TransactionFromMapping(payload)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}

	fields := tx.Mapping()
	fields[FIELD_SIGNATURE] = payload[FIELD_SIGNATURE]

	hash, err := VerifyPayload(fields)
	if err != nil {
		return nil, err
	}

	sig, err := ParseSignature(fields[FIELD_SIGNATURE].(string))
	if err != nil {
		return nil, err
	}

	return &SignedTransaction{
		fields:    fields,
		hash:      hash,
		signature: sig,
		from:      tx.From(),
	}, nil
}
