package icon

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockHandler answers one method for a MockProvider. Returning a non-nil
// error short-circuits the response, return an *RpcError to simulate a node
// side failure.
type MockHandler func(params interface{}) (interface{}, error)

// MockProvider is an in-memory Provider for tests and offline tooling.
// Unknown methods fail with RPC_CODE_METHOD_NOT_FOUND.
type MockProvider struct {
	mu        sync.Mutex
	handlers  map[string]MockHandler
	requests  []*Request
	connected bool
	nextID    uint64
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		handlers:  make(map[string]MockHandler),
		connected: true,
	}
}

func (m *MockProvider) Handle(method string, h MockHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[method] = h
}

// HandleResult registers a handler that always returns result.
func (m *MockProvider) HandleResult(method string, result interface{}) {
	m.Handle(method, func(interface{}) (interface{}, error) {
		return result, nil
	})
}

func (m *MockProvider) SetConnected(connected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = connected
}

// Requests returns the requests seen so far, oldest first.
func (m *MockProvider) Requests() []*Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Request, len(m.requests))
	copy(out, m.requests)
	return out
}

func (m *MockProvider) MakeRequest(ctx context.Context, method string, params interface{}) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Err: err}
	}

	m.mu.Lock()
	m.nextID++
	req := newRequest(m.nextID, method, params)
	m.requests = append(m.requests, req)
	h, ok := m.handlers[method]
	connected := m.connected
	m.mu.Unlock()

	if !connected {
		return nil, &TransportError{Err: fmt.Errorf("mock provider disconnected")}
	}

	if !ok {
		return nil, &RpcError{Code: RPC_CODE_METHOD_NOT_FOUND, Message: "Method not found: " + method}
	}

	result, err := h(params)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed encoding mock result: %w", err)
	}

	return &Response{JsonRpc: JSON_RPC_VERSION, Id: req.Id, Result: raw}, nil
}

func (m *MockProvider) IsConnected(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}
