package icon

// Account is a key pair together with the hx address derived from it. The
// caller owns the key material, nothing in this package persists it.
type Account struct {
	priv *PrivateKey
	pub  *PublicKey
	addr Address
}

// Generates a fresh Account from system entropy.
func GenerateAccount() (*Account, error) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return newAccount(priv), nil
}

func NewAccount(priv *PrivateKey) (*Account, error) {
	if !priv.valid() {
		return nil, &SigningError{Err: ErrInvalidPriv}
	}
	return newAccount(priv), nil
}

func AccountFromHex(privHex string) (*Account, error) {
	priv, err := NewPrivateKeyFromHex(privHex)
	if err != nil {
		return nil, err
	}
	return newAccount(priv), nil
}

func AccountFromBytes(privBytes []byte) (*Account, error) {
	priv, err := NewPrivateKeyFromBytes(privBytes)
	if err != nil {
		return nil, err
	}
	return newAccount(priv), nil
}

func newAccount(priv *PrivateKey) *Account {
	pub := priv.PublicKey()
	return &Account{
		priv: priv,
		pub:  pub,
		addr: pub.Address(),
	}
}

func (a *Account) Address() Address {
	return a.addr
}

func (a *Account) Addr() string {
	return a.addr.String()
}

func (a *Account) PublicKey() *PublicKey {
	return a.pub
}

func (a *Account) PrivateKey() *PrivateKey {
	return a.priv
}

func (a *Account) Sign(hash Hash) (Signature, error) {
	if a == nil {
		return Signature{}, &SigningError{Err: ErrAccountNotFound}
	}
	return Sign(hash, a.priv)
}

func (a *Account) Verify(hash Hash, sig Signature) bool {
	return Verify(hash, sig, a.pub)
}
