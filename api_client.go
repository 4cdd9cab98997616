package icon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// Client exposes the ICON JSON-RPC v3 methods over a Provider. Every method
// validates its identifiers before any request is made.
type Client struct {
	provider Provider
	log      *zap.Logger
}

type clientOptFn func(*clientOpts)

type clientOpts struct {
	logger *zap.Logger
}

func defaultClientOpts() *clientOpts {
	return &clientOpts{
		logger: zap.NewNop(),
	}
}

func WithLogger(l *zap.Logger) clientOptFn {
	return func(opts *clientOpts) {
		if l != nil {
			opts.logger = l
		}
	}
}

func NewClient(provider Provider, optFns ...clientOptFn) *Client {
	opts := defaultClientOpts()
	for _, fn := range optFns {
		fn(opts)
	}
	return &Client{
		provider: provider,
		log:      opts.logger,
	}
}

func (c *Client) Provider() Provider {
	return c.provider
}

func (c *Client) IsConnected(ctx context.Context) bool {
	return c.provider.IsConnected(ctx)
}

// Block is the subset of a block that clients commonly need. The complete
// node response is kept in Raw.
type Block struct {
	Version                  string            `json:"version"`
	Height                   int64             `json:"height"`
	BlockHash                string            `json:"block_hash"`
	PrevBlockHash            string            `json:"prev_block_hash"`
	MerkleTreeRootHash       string            `json:"merkle_tree_root_hash"`
	TimeStamp                int64             `json:"time_stamp"`
	PeerId                   string            `json:"peer_id"`
	Signature                string            `json:"signature"`
	ConfirmedTransactionList []json.RawMessage `json:"confirmed_transaction_list"`

	Raw json.RawMessage `json:"-"`
}

type ScoreAPIParam struct {
	Name    string      `json:"name,omitempty"`
	Type    string      `json:"type"`
	Indexed string      `json:"indexed,omitempty"`
	Default interface{} `json:"default,omitempty"`
}

// ScoreAPI describes one function, fallback or eventlog of a contract.
type ScoreAPI struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Inputs   []ScoreAPIParam `json:"inputs"`
	Outputs  []ScoreAPIParam `json:"outputs,omitempty"`
	Readonly string          `json:"readonly,omitempty"`
	Payable  string          `json:"payable,omitempty"`
}

func (s ScoreAPI) IsReadonly() bool {
	return s.Readonly == "0x1"
}

type EventLog struct {
	ScoreAddress string   `json:"scoreAddress"`
	Indexed      []string `json:"indexed"`
	Data         []string `json:"data"`
}

type TransactionResult struct {
	Status             string          `json:"status"`
	To                 string          `json:"to"`
	TxHash             string          `json:"txHash"`
	TxIndex            string          `json:"txIndex"`
	BlockHeight        string          `json:"blockHeight"`
	BlockHash          string          `json:"blockHash"`
	CumulativeStepUsed string          `json:"cumulativeStepUsed"`
	StepUsed           string          `json:"stepUsed"`
	StepPrice          string          `json:"stepPrice"`
	ScoreAddress       string          `json:"scoreAddress,omitempty"`
	EventLogs          []EventLog      `json:"eventLogs"`
	LogsBloom          string          `json:"logsBloom"`
	Failure            *TxFailure      `json:"failure,omitempty"`
	Raw                json.RawMessage `json:"-"`
}

// TxFailure is set on a failed transaction result. Unlike RpcError the
// code is a hex string.
type TxFailure struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (r *TransactionResult) Succeeded() bool {
	return r.Status == "0x1"
}

// TransactionInfo is a transaction as returned by icx_getTransactionByHash:
// the signed payload plus its position in the chain.
type TransactionInfo struct {
	Mapping

	TxHash      string `json:"-"`
	BlockHeight string `json:"-"`
	BlockHash   string `json:"-"`
	TxIndex     string `json:"-"`
}

// CallRequest is a read-only contract call.
type CallRequest struct {
	// Optional
	From   string
	To     string
	Method string
	Params Mapping
	// Optional, block height to query at
	Height *big.Int
}

// GetBlock returns a block by "latest", hex height or block hash.
func (c *Client) GetBlock(ctx context.Context, value string) (*Block, error) {
	var (
		method string
		params interface{}
	)

	switch {
	case IsPredefinedBlockValue(value):
		method = METHOD_GET_LAST_BLOCK
	case IsHash(value):
		method = METHOD_GET_BLOCK_BY_HASH
		params = Mapping{"hash": value}
	case IsHexNumber(value):
		method = METHOD_GET_BLOCK_BY_HEIGHT
		params = Mapping{"height": value}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidBlockValue, value)
	}

	res, err := c.request(ctx, method, params)
	if err != nil {
		return nil, err
	}

	block := new(Block)
	if err := res.Decode(block); err != nil {
		return nil, err
	}
	block.Raw = res.Result

	return block, nil
}

func (c *Client) GetBalance(ctx context.Context, addr string) (*big.Int, error) {
	if err := ValidateAddress(addr); err != nil {
		return nil, err
	}

	res, err := c.request(ctx, METHOD_GET_BALANCE, Mapping{"address": addr})
	if err != nil {
		return nil, err
	}

	return decodeHexResult(res)
}

func (c *Client) GetTotalSupply(ctx context.Context) (*big.Int, error) {
	res, err := c.request(ctx, METHOD_GET_TOTAL_SUPPLY, nil)
	if err != nil {
		return nil, err
	}

	return decodeHexResult(res)
}

// GetScoreAPI lists the external API of a deployed contract. addr must be
// a cx address.
func (c *Client) GetScoreAPI(ctx context.Context, addr string) ([]ScoreAPI, error) {
	if err := ValidateContractAddress(addr); err != nil {
		return nil, err
	}

	res, err := c.request(ctx, METHOD_GET_SCORE_API, Mapping{"address": addr})
	if err != nil {
		return nil, err
	}

	var apis []ScoreAPI
	if err := res.Decode(&apis); err != nil {
		return nil, err
	}

	return apis, nil
}

func (c *Client) GetTransactionResult(ctx context.Context, txHash string) (*TransactionResult, error) {
	if err := ValidateHash(txHash); err != nil {
		return nil, err
	}

	res, err := c.request(ctx, METHOD_GET_TRANSACTION_RESULT, Mapping{"txHash": txHash})
	if err != nil {
		return nil, err
	}

	result := new(TransactionResult)
	if err := res.Decode(result); err != nil {
		return nil, err
	}
	result.Raw = res.Result

	return result, nil
}

func (c *Client) GetTransactionByHash(ctx context.Context, txHash string) (*TransactionInfo, error) {
	if err := ValidateHash(txHash); err != nil {
		return nil, err
	}

	res, err := c.request(ctx, METHOD_GET_TRANSACTION_BY_HASH, Mapping{"txHash": txHash})
	if err != nil {
		return nil, err
	}

	var fields Mapping
	if err := res.Decode(&fields); err != nil {
		return nil, err
	}

	info := &TransactionInfo{Mapping: fields}
	info.TxHash, _ = fields["txHash"].(string)
	info.BlockHeight, _ = fields["blockHeight"].(string)
	info.BlockHash, _ = fields["blockHash"].(string)
	info.TxIndex, _ = fields["txIndex"].(string)

	return info, nil
}

// Call executes a read-only contract method and returns the raw result for
// the caller to decode.
func (c *Client) Call(ctx context.Context, call CallRequest) (json.RawMessage, error) {
	if call.From != "" {
		if err := ValidateAddress(call.From); err != nil {
			return nil, err
		}
	}
	if err := ValidateContractAddress(call.To); err != nil {
		return nil, err
	}
	if call.Method == "" {
		return nil, &MissingFieldError{Field: FIELD_METHOD}
	}

	data := Mapping{
		FIELD_METHOD: call.Method,
		FIELD_PARAMS: call.Params,
	}

	params, err := normalizeMapping(Mapping{
		FIELD_FROM:      optionalString(call.From),
		FIELD_TO:        call.To,
		FIELD_DATA_TYPE: DATA_TYPE_CALL,
		FIELD_DATA:      data,
		"height":        call.Height,
	}, "")
	if err != nil {
		return nil, err
	}

	res, err := c.request(ctx, METHOD_CALL, params)
	if err != nil {
		return nil, err
	}

	return res.Result, nil
}

// SendTransaction submits a signed transaction and returns the hash the
// node assigned to it. The hash is checked against the locally computed one.
func (c *Client) SendTransaction(ctx context.Context, tx *SignedTransaction) (Hash, error) {
	res, err := c.request(ctx, METHOD_SEND_TRANSACTION, tx.Payload())
	if err != nil {
		return Hash{}, err
	}

	var raw string
	if err := res.Decode(&raw); err != nil {
		return Hash{}, err
	}

	hash, err := ParseHash(raw)
	if err != nil {
		return Hash{}, fmt.Errorf("failed parsing returned hash: %w", err)
	}

	if hash != tx.Hash() {
		return hash, &HashMismatchError{Expected: tx.Hash(), Actual: hash}
	}

	c.log.Info("transaction sent",
		zap.String("from", tx.From().String()),
		zap.String("hash", hash.String()),
	)

	return hash, nil
}

// SendTransactionFull submits a signed transaction and returns the whole
// JSON-RPC response. A node side error is returned inside the response, with
// Response.Error set, rather than as an error. Transport failures are still
// returned as errors.
func (c *Client) SendTransactionFull(ctx context.Context, tx *SignedTransaction) (*Response, error) {
	res, err := c.request(ctx, METHOD_SEND_TRANSACTION, tx.Payload())
	if err != nil {
		var rpcErr *RpcError
		if errors.As(err, &rpcErr) {
			return &Response{JsonRpc: JSON_RPC_VERSION, Error: rpcErr}, nil
		}
		return nil, err
	}

	return res, nil
}

// EstimateStep asks the node how many steps tx would consume. The node
// exposes this on its debug endpoint.
func (c *Client) EstimateStep(ctx context.Context, tx *Transaction) (*big.Int, error) {
	if err := tx.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	res, err := c.request(ctx, METHOD_DEBUG_ESTIMATE_STEP, tx.EstimateParams())
	if err != nil {
		return nil, err
	}

	return decodeHexResult(res)
}

func (c *Client) request(ctx context.Context, method string, params interface{}) (*Response, error) {
	res, err := c.provider.MakeRequest(ctx, method, params)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.Error(err))
		return nil, err
	}
	return res, nil
}

func decodeHexResult(res *Response) (*big.Int, error) {
	var raw string
	if err := res.Decode(&raw); err != nil {
		return nil, err
	}
	return HexToBigInt(raw)
}
