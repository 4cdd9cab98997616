package icon

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// IconClient ties a Client and a Wallet together: it builds, signs and
// sends transactions for accounts held by the wallet.
type IconClient struct {
	*Client
	wallet *Wallet

	nid          *big.Int
	stepLimit    *big.Int
	estimateStep bool
	log          *zap.Logger
}

type iconClientOpts struct {
	nid          uint64
	stepLimit    uint64
	estimateStep bool
	wallet       *Wallet
	logger       *zap.Logger
}

func defaultIconClientOpts() *iconClientOpts {
	return &iconClientOpts{
		nid:       MAINNET_NID,
		stepLimit: DEFAULT_STEP_LIMIT,
		logger:    zap.NewNop(),
	}
}

type iconClientOptFunc func(opts *iconClientOpts)

func WithNID(nid uint64) iconClientOptFunc {
	return func(opts *iconClientOpts) {
		opts.nid = nid
	}
}

func WithStepLimit(limit uint64) iconClientOptFunc {
	return func(opts *iconClientOpts) {
		opts.stepLimit = limit
	}
}

// Asks the node for a step estimate before each send and uses it as the
// step limit instead of the configured one.
func WithStepEstimation() iconClientOptFunc {
	return func(opts *iconClientOpts) {
		opts.estimateStep = true
	}
}

func WithWallet(w *Wallet) iconClientOptFunc {
	return func(opts *iconClientOpts) {
		opts.wallet = w
	}
}

func WithClientLogger(l *zap.Logger) iconClientOptFunc {
	return func(opts *iconClientOpts) {
		if l != nil {
			opts.logger = l
		}
	}
}

func NewIconClient(provider Provider, optFns ...iconClientOptFunc) *IconClient {
	opts := defaultIconClientOpts()
	for _, fn := range optFns {
		fn(opts)
	}

	wallet := opts.wallet
	if wallet == nil {
		wallet = NewWallet(WithWalletLogger(opts.logger))
	}

	return &IconClient{
		Client:       NewClient(provider, WithLogger(opts.logger)),
		wallet:       wallet,
		nid:          new(big.Int).SetUint64(opts.nid),
		stepLimit:    new(big.Int).SetUint64(opts.stepLimit),
		estimateStep: opts.estimateStep,
		log:          opts.logger,
	}
}

func (c *IconClient) Wallet() *Wallet {
	return c.wallet
}

// Sends value, denominated in loop, from the sender address to the
// recipient.
//
// Returns the transaction hash.
func (c *IconClient) Transfer(ctx context.Context, from Address, to string, value *big.Int) (Hash, error) {
	return c.buildAndSend(ctx, TxConfig{
		Kind:  KindTransfer,
		From:  from.String(),
		To:    to,
		Value: value,
	})
}

// Sends msg as the data of a message transaction.
func (c *IconClient) SendMessage(ctx context.Context, from Address, to string, msg []byte) (Hash, error) {
	return c.buildAndSend(ctx, TxConfig{
		Kind:    KindMessage,
		From:    from.String(),
		To:      to,
		Message: msg,
	})
}

// Calls a state changing method on the contract at to.
func (c *IconClient) CallSC(ctx context.Context, from Address, to, method string, params *Params, value *big.Int) (Hash, error) {
	return c.buildAndSend(ctx, TxConfig{
		Kind:   KindCall,
		From:   from.String(),
		To:     to,
		Method: method,
		Params: params.Mapping(),
		Value:  value,
	})
}

// Installs a contract when to is ZERO_CONTRACT_ADDRESS, otherwise updates
// the contract at to.
func (c *IconClient) Deploy(ctx context.Context, from Address, to, contentType string, content []byte, params *Params) (Hash, error) {
	return c.buildAndSend(ctx, TxConfig{
		Kind:        KindDeploy,
		From:        from.String(),
		To:          to,
		ContentType: contentType,
		Content:     content,
		Params:      params.Mapping(),
	})
}

func (c *IconClient) buildAndSend(ctx context.Context, cfg TxConfig) (Hash, error) {
	cfg.NID = c.nid
	cfg.StepLimit = c.stepLimit

	tx, err := BuildTransaction(cfg)
	if err != nil {
		return Hash{}, fmt.Errorf("failed building %s transaction: %w", cfg.Kind, err)
	}

	if c.estimateStep {
		steps, err := c.EstimateStep(ctx, tx)
		if err != nil {
			return Hash{}, fmt.Errorf("failed estimating steps: %w", err)
		}

		// Keep the timestamp so the estimate matches what gets sent.
		ts, err := HexToBigInt(tx.fields[FIELD_TIMESTAMP].(string))
		if err != nil {
			return Hash{}, err
		}
		cfg.StepLimit = steps
		cfg.Timestamp = ts.Int64()

		c.log.Debug("estimated steps",
			zap.Stringer("kind", cfg.Kind),
			zap.String("steps", ToHexNumber(steps)),
		)

		if tx, err = BuildTransaction(cfg); err != nil {
			return Hash{}, fmt.Errorf("failed rebuilding %s transaction: %w", cfg.Kind, err)
		}
	}

	signed, err := c.wallet.SignTransaction(tx)
	if err != nil {
		return Hash{}, fmt.Errorf("failed signing transaction: %w", err)
	}

	hash, err := c.SendTransaction(ctx, signed)
	if err != nil {
		return hash, fmt.Errorf("failed sending transaction: %w", err)
	}

	return hash, nil
}
