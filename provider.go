package icon

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider carries JSON-RPC requests to a node. Implementations must be
// safe for concurrent use.
type Provider interface {
	// MakeRequest sends method with params and returns the decoded response.
	// A response carrying a JSON-RPC error is returned as *RpcError, any
	// failure to get a response at all as *TransportError.
	MakeRequest(ctx context.Context, method string, params interface{}) (*Response, error)
	IsConnected(ctx context.Context) bool
}

type Request struct {
	JsonRpc string      `json:"jsonrpc"`
	Id      uint64      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type Response struct {
	JsonRpc string          `json:"jsonrpc"`
	Id      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RpcError       `json:"error,omitempty"`
}

func newRequest(id uint64, method string, params interface{}) *Request {
	return &Request{
		JsonRpc: JSON_RPC_VERSION,
		Id:      id,
		Method:  method,
		Params:  params,
	}
}

// Decode unmarshals the result into v.
func (r *Response) Decode(v interface{}) error {
	if len(r.Result) == 0 || string(r.Result) == "null" {
		return ErrNoResult
	}
	if err := json.Unmarshal(r.Result, v); err != nil {
		return fmt.Errorf("failed decoding result: %w", err)
	}
	return nil
}
