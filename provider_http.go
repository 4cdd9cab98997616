package icon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// HTTPProvider posts JSON-RPC requests to an ICON node over HTTP(S).
type HTTPProvider struct {
	baseURL   *url.URL
	version   int
	client    *http.Client
	nextID    func() uint64
	log       *zap.Logger
	dialTimeo time.Duration
}

type httpProviderOptFn func(*httpProviderOpts)

type httpProviderOpts struct {
	timeout     time.Duration
	dialTimeout time.Duration
	httpClient  *http.Client
	idGenerator func() uint64
	logger      *zap.Logger
}

func defaultHttpProviderOpts() *httpProviderOpts {
	return &httpProviderOpts{
		timeout:     DEFAULT_REQUEST_TIMEOUT,
		dialTimeout: DEFAULT_DIAL_TIMEOUT,
		logger:      zap.NewNop(),
	}
}

// Sets the timeout applied to every request. Ignored when a custom
// http.Client is supplied.
func WithTimeout(d time.Duration) httpProviderOptFn {
	return func(opts *httpProviderOpts) {
		opts.timeout = d
	}
}

func WithDialTimeout(d time.Duration) httpProviderOptFn {
	return func(opts *httpProviderOpts) {
		opts.dialTimeout = d
	}
}

func WithHTTPClient(c *http.Client) httpProviderOptFn {
	return func(opts *httpProviderOpts) {
		opts.httpClient = c
	}
}

// Replaces the default request id counter. The function must be safe
// for concurrent use.
func WithIDGenerator(fn func() uint64) httpProviderOptFn {
	return func(opts *httpProviderOpts) {
		opts.idGenerator = fn
	}
}

func WithProviderLogger(l *zap.Logger) httpProviderOptFn {
	return func(opts *httpProviderOpts) {
		if l != nil {
			opts.logger = l
		}
	}
}

// NewHTTPProvider returns a provider for the node at baseURL, for example
// "https://ctz.solidwallet.io". Requests go to <baseURL>/api/v<version>,
// debug methods to <baseURL>/api/v<version>d.
func NewHTTPProvider(baseURL string, version int, optFns ...httpProviderOptFn) (*HTTPProvider, error) {
	opts := defaultHttpProviderOpts()
	for _, fn := range optFns {
		fn(opts)
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed parsing endpoint url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported endpoint scheme %q", ErrInvalidConfig, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: endpoint has no host", ErrInvalidConfig)
	}

	if version <= 0 {
		version = DEFAULT_API_VERSION
	}

	client := opts.httpClient
	if client == nil {
		client = &http.Client{Timeout: opts.timeout}
	}

	nextID := opts.idGenerator
	if nextID == nil {
		var counter atomic.Uint64
		nextID = counter.Inc
	}

	return &HTTPProvider{
		baseURL:   u,
		version:   version,
		client:    client,
		nextID:    nextID,
		log:       opts.logger,
		dialTimeo: opts.dialTimeout,
	}, nil
}

func (p *HTTPProvider) endpoint(method string) string {
	path := fmt.Sprintf("/api/v%d", p.version)
	if strings.HasPrefix(method, DEBUG_METHOD_PREFIX) {
		path += "d"
	}
	return p.baseURL.String() + path
}

func (p *HTTPProvider) MakeRequest(ctx context.Context, method string, params interface{}) (*Response, error) {
	req := newRequest(p.nextID(), method, params)

	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(req); err != nil {
		return nil, fmt.Errorf("failed encoding request: %w", err)
	}

	endpoint := p.endpoint(method)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, buf)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed creating request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	p.log.Debug("sending request",
		zap.String("method", method),
		zap.Uint64("id", req.Id),
		zap.String("endpoint", endpoint),
	)

	httpRes, err := p.client.Do(httpReq)
	if err != nil {
		p.log.Debug("request failed", zap.String("method", method), zap.Error(err))
		return nil, &TransportError{Err: fmt.Errorf("failed making post request to (%s): %w", endpoint, err)}
	}
	defer httpRes.Body.Close()

	body, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: httpRes.StatusCode, Err: fmt.Errorf("failed reading response body: %w", err)}
	}

	// ICON nodes answer JSON-RPC errors with HTTP 4xx/5xx and a proper body,
	// which is more useful than the status code. Look there first.
	res := new(Response)
	decodeErr := json.Unmarshal(body, res)
	if decodeErr == nil && res.Error != nil {
		p.log.Debug("rpc error",
			zap.String("method", method),
			zap.Uint64("id", req.Id),
			zap.Int("code", res.Error.Code),
			zap.String("message", res.Error.Message),
		)
		return nil, res.Error
	}

	if httpRes.StatusCode < 200 || httpRes.StatusCode > 299 {
		return nil, &TransportError{
			StatusCode: httpRes.StatusCode,
			Err:        errors.New(http.StatusText(httpRes.StatusCode)),
		}
	}

	if decodeErr != nil {
		return nil, &TransportError{StatusCode: httpRes.StatusCode, Err: fmt.Errorf("failed decoding response: %w", decodeErr)}
	}

	return res, nil
}

// IsConnected reports whether a TCP connection to the node can be opened.
// It does not issue a request.
func (p *HTTPProvider) IsConnected(ctx context.Context) bool {
	host := p.baseURL.Host
	if p.baseURL.Port() == "" {
		port := "80"
		if p.baseURL.Scheme == "https" {
			port = "443"
		}
		host = net.JoinHostPort(p.baseURL.Hostname(), port)
	}

	dialer := net.Dialer{Timeout: p.dialTimeo}
	conn, err := dialer.DialContext(ctx, "tcp", host)
	if err != nil {
		p.log.Debug("node unreachable", zap.String("host", host), zap.Error(err))
		return false
	}
	_ = conn.Close()

	return true
}
