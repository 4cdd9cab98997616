package icon

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHash         = errors.New("invalid hash")
	ErrInvalidHexNumber    = errors.New("invalid hex number")
	ErrInvalidBlockValue   = errors.New("block value must be a hex height, a block hash or \"latest\"")
	ErrUnsupportedValue    = errors.New("unsupported transaction field value")
	ErrInvalidKind         = errors.New("unknown transaction kind")
	ErrNegativeValue       = errors.New("integer field must not be negative")
	ErrInvalidDeployTarget = errors.New("deploy target must be a contract address")
	ErrNilTransaction      = errors.New("transaction is nil")
	ErrUnsupportedVersion  = errors.New("unsupported transaction version")
	ErrPrivLength          = errors.New("private key has wrong length")
	ErrInvalidPriv         = errors.New("private key is missing or zeroed")
	ErrInvalidPub          = errors.New("invalid public key")
	ErrAccountNotFound     = errors.New("account not found for address")
	ErrNoResult            = errors.New("no result returned")
	ErrInvalidConfig       = errors.New("invalid config")
)

// AddressFormatError is returned whenever an identifier fails IsAddress,
// before any signing or network call is attempted.
type AddressFormatError struct {
	Value string
}

func (e *AddressFormatError) Error() string {
	return fmt.Sprintf("invalid address format: %q", e.Value)
}

// MissingFieldError names the wire field a transaction kind requires but
// was not given.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

type HashMismatchError struct {
	Expected Hash
	Actual   Hash
}

func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("hash mismatch: expected %s, got %s", e.Expected, e.Actual)
}

type InvalidSignatureError struct {
	Reason string
}

func (e *InvalidSignatureError) Error() string {
	return "invalid signature: " + e.Reason
}

// SigningError reports a malformed key or a failed curve operation.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signing failed: %s", e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// ValidationError wraps the builder error that stopped a transaction from
// being signed.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid transaction: %s", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// RpcError is the JSON-RPC error object returned by the node. Code and
// Message are passed through verbatim.
type RpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *RpcError) Error() string {
	return fmt.Sprintf("rpc error (%d): %s", e.Code, e.Message)
}

// TransportError is any failure to get a JSON-RPC response out of the node:
// refused connections, timeouts, non-2xx replies without a parsable body.
// StatusCode is zero when no HTTP response was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error (HTTP %d): %s", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport error: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
