package icon

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Wallet holds unlocked accounts in memory, keyed by address. Nothing is
// written to disk, callers that need to keep keys are responsible for
// storing them.
type Wallet struct {
	unlockedAccounts map[Address]*Account
	mu               sync.RWMutex

	log *zap.Logger
}

type walletOpts struct {
	logger *zap.Logger
}

func defaultWalletOpts() *walletOpts {
	return &walletOpts{
		logger: zap.NewNop(),
	}
}

type walletOptFunc func(opts *walletOpts)

func WithWalletLogger(l *zap.Logger) walletOptFunc {
	return func(opts *walletOpts) {
		if l != nil {
			opts.logger = l
		}
	}
}

func NewWallet(optFns ...walletOptFunc) *Wallet {
	opts := defaultWalletOpts()
	for _, fn := range optFns {
		fn(opts)
	}
	return &Wallet{
		unlockedAccounts: map[Address]*Account{},
		log:              opts.logger,
	}
}

// Generates a new account and unlocks it.
//
// Returns the address of the generated account.
func (w *Wallet) Generate() (Address, error) {
	acc, err := GenerateAccount()
	if err != nil {
		return Address{}, fmt.Errorf("failed generating account: %w", err)
	}

	w.add(acc)
	w.log.Info("generated account", zap.String("address", acc.Addr()))

	return acc.Address(), nil
}

// Derives an account from the hex encoded private key and unlocks it.
// Importing an address twice replaces the earlier account.
func (w *Wallet) ImportFromHex(privHex string) (Address, error) {
	acc, err := AccountFromHex(privHex)
	if err != nil {
		return Address{}, fmt.Errorf("failed deriving account from private key: %w", err)
	}

	w.add(acc)
	w.log.Info("imported account", zap.String("address", acc.Addr()))

	return acc.Address(), nil
}

func (w *Wallet) ImportAccount(acc *Account) (Address, error) {
	if acc == nil || !acc.PrivateKey().valid() {
		return Address{}, &SigningError{Err: ErrInvalidPriv}
	}

	w.add(acc)
	w.log.Info("imported account", zap.String("address", acc.Addr()))

	return acc.Address(), nil
}

// Removes the account from the wallet and zeroes its private key.
func (w *Wallet) Remove(addr Address) bool {
	w.mu.Lock()
	acc, ok := w.unlockedAccounts[addr]
	delete(w.unlockedAccounts, addr)
	w.mu.Unlock()

	if ok {
		acc.PrivateKey().Zero()
		w.log.Info("removed account", zap.String("address", addr.String()))
	}

	return ok
}

func (w *Wallet) Account(addr Address) (*Account, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	acc, ok := w.unlockedAccounts[addr]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
	}
	return acc, nil
}

func (w *Wallet) Has(addr Address) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.unlockedAccounts[addr]
	return ok
}

// SignTransaction signs tx with the account matching its from address.
func (w *Wallet) SignTransaction(tx *Transaction) (*SignedTransaction, error) {
	if err := tx.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	acc, err := w.Account(tx.From())
	if err != nil {
		return nil, &SigningError{Err: err}
	}

	signed, err := NewSignedTransaction(tx, acc)
	if err != nil {
		return nil, err
	}

	w.log.Debug("signed transaction",
		zap.String("from", acc.Addr()),
		zap.Stringer("kind", tx.Kind()),
		zap.String("hash", signed.Hash().String()),
	)

	return signed, nil
}

// List returns the unlocked addresses in ascending order.
func (w *Wallet) List() []Address {
	w.mu.RLock()
	addrs := make([]Address, 0, len(w.unlockedAccounts))
	for addr := range w.unlockedAccounts {
		addrs = append(addrs, addr)
	}
	w.mu.RUnlock()

	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i].String() < addrs[j].String()
	})

	return addrs
}

func (w *Wallet) add(acc *Account) {
	w.mu.Lock()
	w.unlockedAccounts[acc.Address()] = acc
	w.mu.Unlock()
}
