package icon

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedTransactionEndToEnd(t *testing.T) {
	acc := testAccount(t)

	tx, err := BuildTransaction(TxConfig{
		Kind:      KindTransfer,
		From:      acc.Addr(),
		To:        testToAddr,
		Value:     big.NewInt(0x1),
		StepLimit: big.NewInt(0x2000000),
		NID:       big.NewInt(0x3),
	})
	require.NoError(t, err)

	signed, err := NewSignedTransaction(tx, acc)
	require.NoError(t, err)

	payload := signed.Payload()
	require.Contains(t, payload, FIELD_SIGNATURE)
	assert.Equal(t, signed.Signature().Base64(), payload[FIELD_SIGNATURE])
	assert.Equal(t, acc.Address(), signed.From())

	// Through JSON and back, the way a node receives it.
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var received Mapping
	require.NoError(t, json.Unmarshal(raw, &received))

	rehash, err := HashTransaction(received)
	require.NoError(t, err)
	assert.Equal(t, signed.Hash(), rehash)

	txHash, err := tx.Hash()
	require.NoError(t, err)
	assert.Equal(t, txHash, rehash)

	sig, err := ParseSignature(received[FIELD_SIGNATURE].(string))
	require.NoError(t, err)
	assert.True(t, Verify(rehash, sig, acc.PublicKey()))

	verified, err := VerifyPayload(received)
	require.NoError(t, err)
	assert.Equal(t, signed.Hash(), verified)

	require.NoError(t, CheckHash(received, signed.Hash()))

	rebuilt, err := SignedTransactionFromPayload(received)
	require.NoError(t, err)
	assert.Equal(t, signed.Hash(), rebuilt.Hash())
	assert.Equal(t, signed.Signature(), rebuilt.Signature())
}

func TestSignedTransactionTamper(t *testing.T) {
	acc := testAccount(t)

	tx, err := NewTransferTx(acc.Addr(), testToAddr, big.NewInt(1), big.NewInt(100), big.NewInt(1))
	require.NoError(t, err)

	signed, err := NewSignedTransaction(tx, acc)
	require.NoError(t, err)

	payload := signed.Payload()
	payload[FIELD_VALUE] = "0x2"

	_, err = VerifyPayload(payload)
	var sigErr *InvalidSignatureError
	assert.True(t, errors.As(err, &sigErr))

	err = CheckHash(payload, signed.Hash())
	var mismatch *HashMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, signed.Hash(), mismatch.Expected)

	// The signed value is not affected by edits to a returned payload.
	assert.Equal(t, "0x1", signed.Payload()[FIELD_VALUE])

	delete(payload, FIELD_SIGNATURE)
	_, err = VerifyPayload(payload)
	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, FIELD_SIGNATURE, missing.Field)
}

func TestSignedTransactionErrors(t *testing.T) {
	acc := testAccount(t)

	_, err := NewSignedTransaction(nil, acc)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.ErrorIs(t, err, ErrNilTransaction)

	tx, err := NewTransferTx(acc.Addr(), testToAddr, big.NewInt(1), big.NewInt(100), big.NewInt(1))
	require.NoError(t, err)

	_, err = NewSignedTransaction(tx, nil)
	var signingErr *SigningError
	assert.True(t, errors.As(err, &signingErr))

	other, err := GenerateAccount()
	require.NoError(t, err)
	signed, err := NewSignedTransaction(tx, other)
	assert.Nil(t, signed)
	assert.True(t, errors.As(err, &signingErr))

	// A zeroed key fails and leaves nothing half built.
	zeroed, err := AccountFromHex(acc.PrivateKey().Hex())
	require.NoError(t, err)
	zeroed.PrivateKey().Zero()

	signed, err = NewSignedTransaction(tx, zeroed)
	assert.Nil(t, signed)
	assert.True(t, errors.As(err, &signingErr))
	assert.ErrorIs(t, err, ErrInvalidPriv)
}

func TestSignedTransactionFromPayloadErrors(t *testing.T) {
	acc := testAccount(t)

	tx, err := NewTransferTx(acc.Addr(), testToAddr, big.NewInt(1), big.NewInt(100), big.NewInt(1))
	require.NoError(t, err)

	signed, err := NewSignedTransaction(tx, acc)
	require.NoError(t, err)

	payload := signed.Payload()
	payload[FIELD_TO] = "hx12"

	_, err = SignedTransactionFromPayload(payload)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))

	var formatErr *AddressFormatError
	assert.True(t, errors.As(err, &formatErr))
}
