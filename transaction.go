package icon

import (
	"fmt"
	"math/big"
)

type TxKind int

const (
	KindTransfer TxKind = iota
	KindMessage
	KindDeploy
	KindCall
)

func (k TxKind) String() string {
	switch k {
	case KindTransfer:
		return "transfer"
	case KindMessage:
		return "message"
	case KindDeploy:
		return "deploy"
	case KindCall:
		return "call"
	}
	return fmt.Sprintf("TxKind(%d)", int(k))
}

func kindFromDataType(dataType interface{}) (TxKind, error) {
	switch dataType {
	case nil:
		return KindTransfer, nil
	case DATA_TYPE_MESSAGE:
		return KindMessage, nil
	case DATA_TYPE_DEPLOY:
		return KindDeploy, nil
	case DATA_TYPE_CALL:
		return KindCall, nil
	}
	return 0, fmt.Errorf("%w: dataType %v", ErrInvalidKind, dataType)
}

// TxConfig is everything BuildTransaction needs for one transaction. Which
// fields are required depends on Kind. Nil integers and empty strings are
// treated as absent.
type TxConfig struct {
	Kind TxKind

	From      string
	To        string
	Value     *big.Int
	StepLimit *big.Int
	NID       *big.Int
	Nonce     *big.Int

	// Microseconds since the epoch, zero means now.
	Timestamp int64

	// KindMessage
	Message []byte

	// KindCall
	Method string

	// KindCall and KindDeploy
	Params Mapping

	// KindDeploy
	ContentType string
	Content     []byte
}

// Transaction is a validated, unsigned transaction field mapping. It holds
// the exact wire values that get hashed and sent, and cannot be modified
// once built.
type Transaction struct {
	kind        TxKind
	fields      Mapping
	contentHash Hash
}

// BuildTransaction assembles and validates the field mapping for cfg in one
// step. Missing required fields fail with *MissingFieldError, malformed
// addresses with *AddressFormatError.
func BuildTransaction(cfg TxConfig) (*Transaction, error) {
	raw := Mapping{
		FIELD_VERSION:    TX_VERSION,
		FIELD_FROM:       optionalString(cfg.From),
		FIELD_TO:         optionalString(cfg.To),
		FIELD_VALUE:      cfg.Value,
		FIELD_STEP_LIMIT: cfg.StepLimit,
		FIELD_NID:        cfg.NID,
		FIELD_NONCE:      cfg.Nonce,
	}

	if cfg.Timestamp != 0 {
		raw[FIELD_TIMESTAMP] = cfg.Timestamp
	} else {
		raw[FIELD_TIMESTAMP] = currentTimestamp()
	}

	var contentHash Hash

	switch cfg.Kind {
	case KindTransfer:
	case KindMessage:
		raw[FIELD_DATA_TYPE] = DATA_TYPE_MESSAGE
		if cfg.Message != nil {
			raw[FIELD_DATA] = cfg.Message
		}
	case KindCall:
		raw[FIELD_DATA_TYPE] = DATA_TYPE_CALL
		raw[FIELD_DATA] = Mapping{
			FIELD_METHOD: optionalString(cfg.Method),
			FIELD_PARAMS: cfg.Params,
		}
	case KindDeploy:
		raw[FIELD_DATA_TYPE] = DATA_TYPE_DEPLOY
		data := Mapping{
			FIELD_CONTENT_TYPE: optionalString(cfg.ContentType),
			FIELD_PARAMS:       cfg.Params,
		}
		if cfg.Content != nil {
			data[FIELD_CONTENT] = cfg.Content
			copy(contentHash[:], hashSha3(cfg.Content))
		}
		raw[FIELD_DATA] = data
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, int(cfg.Kind))
	}

	fields, err := normalizeMapping(raw, "")
	if err != nil {
		return nil, err
	}

	if err := validateFields(cfg.Kind, fields); err != nil {
		return nil, err
	}

	return &Transaction{
		kind:        cfg.Kind,
		fields:      fields,
		contentHash: contentHash,
	}, nil
}

// TransactionFromMapping rebuilds a Transaction from a wire mapping, for
// example one decoded from JSON. The kind is inferred from dataType and any
// signature field is dropped.
func TransactionFromMapping(m Mapping) (*Transaction, error) {
	kind, err := kindFromDataType(m[FIELD_DATA_TYPE])
	if err != nil {
		return nil, err
	}

	fields, err := normalizeMapping(m.Without(FIELD_SIGNATURE), "")
	if err != nil {
		return nil, err
	}

	if err := validateFields(kind, fields); err != nil {
		return nil, err
	}

	tx := &Transaction{kind: kind, fields: fields}
	if kind == KindDeploy {
		if raw, err := decodeHexBytes(dataField(fields, FIELD_CONTENT)); err == nil {
			copy(tx.contentHash[:], hashSha3(raw))
		}
	}

	return tx, nil
}

func NewTransferTx(from, to string, value, stepLimit, nid *big.Int) (*Transaction, error) {
	return BuildTransaction(TxConfig{
		Kind:      KindTransfer,
		From:      from,
		To:        to,
		Value:     value,
		StepLimit: stepLimit,
		NID:       nid,
	})
}

func NewMessageTx(from, to string, msg []byte, stepLimit, nid *big.Int) (*Transaction, error) {
	return BuildTransaction(TxConfig{
		Kind:      KindMessage,
		From:      from,
		To:        to,
		Message:   msg,
		StepLimit: stepLimit,
		NID:       nid,
	})
}

func NewCallTx(from, to, method string, params Mapping, stepLimit, nid *big.Int) (*Transaction, error) {
	return BuildTransaction(TxConfig{
		Kind:      KindCall,
		From:      from,
		To:        to,
		Method:    method,
		Params:    params,
		StepLimit: stepLimit,
		NID:       nid,
	})
}

func NewDeployTx(from, to, contentType string, content []byte, params Mapping, stepLimit, nid *big.Int) (*Transaction, error) {
	return BuildTransaction(TxConfig{
		Kind:        KindDeploy,
		From:        from,
		To:          to,
		ContentType: contentType,
		Content:     content,
		Params:      params,
		StepLimit:   stepLimit,
		NID:         nid,
	})
}

func (t *Transaction) Kind() TxKind {
	return t.kind
}

// Mapping returns a copy of the wire fields. The copy never carries a
// signature.
func (t *Transaction) Mapping() Mapping {
	return t.fields.Copy()
}

// From returns the sender, or the zero Address when the transaction has
// none.
func (t *Transaction) From() Address {
	s, _ := t.fields[FIELD_FROM].(string)
	addr, _ := ParseAddress(s)
	return addr
}

func (t *Transaction) To() Address {
	s, _ := t.fields[FIELD_TO].(string)
	addr, _ := ParseAddress(s)
	return addr
}

// Hash is the transaction hash the node will report once the transaction
// is signed and accepted.
func (t *Transaction) Hash() (Hash, error) {
	return HashTransaction(t.fields)
}

// ContentHash is the SHA3-256 digest of the raw deploy content. The second
// return value is false for every other kind.
func (t *Transaction) ContentHash() (Hash, bool) {
	return t.contentHash, t.kind == KindDeploy
}

// EstimateParams is the mapping debug_estimateStep expects: the transaction
// without its step limit.
func (t *Transaction) EstimateParams() Mapping {
	return t.fields.Without(FIELD_STEP_LIMIT)
}

// Validate re-runs the checks BuildTransaction applies. A zero Transaction
// fails it.
func (t *Transaction) Validate() error {
	if t == nil {
		return ErrNilTransaction
	}
	return validateFields(t.kind, t.fields)
}

func validateFields(kind TxKind, m Mapping) error {
	required := []string{FIELD_VERSION, FIELD_FROM, FIELD_TO, FIELD_STEP_LIMIT, FIELD_NID, FIELD_TIMESTAMP}
	if kind == KindTransfer {
		required = []string{FIELD_VERSION, FIELD_FROM, FIELD_TO, FIELD_VALUE, FIELD_STEP_LIMIT, FIELD_NID, FIELD_TIMESTAMP}
	}

	for _, field := range required {
		if _, ok := m[field]; !ok {
			return &MissingFieldError{Field: field}
		}
	}

	for _, field := range []string{FIELD_VALUE, FIELD_STEP_LIMIT, FIELD_NID, FIELD_NONCE, FIELD_TIMESTAMP} {
		v, ok := m[field]
		if !ok {
			continue
		}
		if s, isString := v.(string); !isString || !IsHexNumber(s) {
			return fmt.Errorf("%w: field %s = %v", ErrInvalidHexNumber, field, v)
		}
	}

	if m[FIELD_VERSION] != TX_VERSION {
		return fmt.Errorf("%w: %v", ErrUnsupportedVersion, m[FIELD_VERSION])
	}

	from, _ := m[FIELD_FROM].(string)
	if !IsEOAAddress(from) {
		return &AddressFormatError{Value: from}
	}

	to, _ := m[FIELD_TO].(string)

	switch kind {
	case KindTransfer:
		if !IsAddress(to) {
			return &AddressFormatError{Value: to}
		}

	case KindMessage:
		if !IsAddress(to) {
			return &AddressFormatError{Value: to}
		}
		if m[FIELD_DATA_TYPE] != DATA_TYPE_MESSAGE {
			return &MissingFieldError{Field: FIELD_DATA_TYPE}
		}
		if _, ok := m[FIELD_DATA].(string); !ok {
			return &MissingFieldError{Field: FIELD_DATA}
		}

	case KindCall:
		if !IsContractAddress(to) {
			return &AddressFormatError{Value: to}
		}
		if m[FIELD_DATA_TYPE] != DATA_TYPE_CALL {
			return &MissingFieldError{Field: FIELD_DATA_TYPE}
		}
		data, ok := m[FIELD_DATA].(Mapping)
		if !ok {
			return &MissingFieldError{Field: FIELD_DATA}
		}
		if method, _ := data[FIELD_METHOD].(string); method == "" {
			return &MissingFieldError{Field: FIELD_METHOD}
		}
		if err := checkParams(data); err != nil {
			return err
		}

	case KindDeploy:
		if !IsContractAddress(to) {
			return &AddressFormatError{Value: to}
		}
		if m[FIELD_DATA_TYPE] != DATA_TYPE_DEPLOY {
			return &MissingFieldError{Field: FIELD_DATA_TYPE}
		}
		data, ok := m[FIELD_DATA].(Mapping)
		if !ok {
			return &MissingFieldError{Field: FIELD_DATA}
		}
		for _, field := range []string{FIELD_CONTENT_TYPE, FIELD_CONTENT} {
			if s, _ := data[field].(string); s == "" {
				return &MissingFieldError{Field: field}
			}
		}
		if err := checkParams(data); err != nil {
			return err
		}

	default:
		return fmt.Errorf("%w: %d", ErrInvalidKind, int(kind))
	}

	return nil
}

func checkParams(data Mapping) error {
	params, ok := data[FIELD_PARAMS]
	if !ok {
		return nil
	}
	if _, isMapping := params.(Mapping); !isMapping {
		return fmt.Errorf("%w: params must be a mapping, got %T", ErrUnsupportedValue, params)
	}
	return nil
}

func dataField(m Mapping, field string) string {
	data, _ := m[FIELD_DATA].(Mapping)
	s, _ := data[field].(string)
	return s
}

func optionalString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
