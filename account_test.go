package icon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportAccounts(t *testing.T) {

	// Generated accounts must survive an export and re-import unchanged.
	for i := 0; i < 10; i++ {
		acc, err := GenerateAccount()
		require.NoError(t, err)

		imported, err := AccountFromHex(acc.PrivateKey().Hex())
		require.NoError(t, err)

		assert.Equal(t, acc.Address(), imported.Address())
		assert.Equal(t, acc.Addr(), imported.Addr())
		assert.True(t, acc.PublicKey().Equal(imported.PublicKey()))

		fromBytes, err := AccountFromBytes(acc.PrivateKey().Bytes())
		require.NoError(t, err)
		assert.Equal(t, acc.Address(), fromBytes.Address())
	}

	acc, err := AccountFromHex("0x592eb276d534e2c41a2d9356c0ab262dc233d87e4dd71ce705ec130a8d27ff0c")
	require.NoError(t, err)
	assert.Equal(t, "hxe7af5fcfd8dfc67530a01a0e403882687528dfcb", acc.Addr())
}

func TestAccountSignVerify(t *testing.T) {
	acc, err := GenerateAccount()
	require.NoError(t, err)

	hash := Hash{0xde, 0xad, 0xbe, 0xef}

	sig, err := acc.Sign(hash)
	require.NoError(t, err)
	assert.True(t, acc.Verify(hash, sig))

	other, err := GenerateAccount()
	require.NoError(t, err)
	assert.False(t, other.Verify(hash, sig))
}

func TestNewAccountInvalidKey(t *testing.T) {
	_, err := NewAccount(nil)
	var signingErr *SigningError
	require.True(t, errors.As(err, &signingErr))
	assert.ErrorIs(t, err, ErrInvalidPriv)

	var nilAcc *Account
	_, err = nilAcc.Sign(Hash{})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
