package icon

import "time"

const (
	// Public API endpoints
	DEFAULT_MAINNET_ENDPOINT = "https://ctz.solidwallet.io"
	DEFAULT_LISBON_ENDPOINT  = "https://lisbon.net.solidwallet.io"
	DEFAULT_API_VERSION      = 3

	MAINNET_NID uint64 = 0x1
	LISBON_NID  uint64 = 0x2
	BERLIN_NID  uint64 = 0x7

	DEFAULT_REQUEST_TIMEOUT time.Duration = 10 * time.Second
	DEFAULT_DIAL_TIMEOUT    time.Duration = 4 * time.Second
	DEFAULT_STEP_LIMIT      uint64        = 100_000

	TX_VERSION = "0x3"

	ADDRESS_EOA_PREFIX      = "hx"
	ADDRESS_CONTRACT_PREFIX = "cx"
	ADDRESS_PREFIX_LENGTH   = 2
	ADDRESS_BODY_LENGTH     = 20
	ADDRESS_TEXT_LENGTH     = ADDRESS_PREFIX_LENGTH + ADDRESS_BODY_LENGTH*2

	HASH_LENGTH      = 32
	SIGNATURE_LENGTH = 65

	PREDEFINED_BLOCK_LATEST = "latest"

	SEND_TRANSACTION_PREFIX = "icx_sendTransaction"

	DATA_TYPE_CALL    = "call"
	DATA_TYPE_DEPLOY  = "deploy"
	DATA_TYPE_MESSAGE = "message"

	CONTENT_TYPE_ZIP  = "application/zip"
	CONTENT_TYPE_JAVA = "application/java"

	JSON_RPC_VERSION = "2.0"

	// Wire names of transaction fields.
	FIELD_VERSION      = "version"
	FIELD_FROM         = "from"
	FIELD_TO           = "to"
	FIELD_VALUE        = "value"
	FIELD_STEP_LIMIT   = "stepLimit"
	FIELD_TIMESTAMP    = "timestamp"
	FIELD_NID          = "nid"
	FIELD_NONCE        = "nonce"
	FIELD_DATA_TYPE    = "dataType"
	FIELD_DATA         = "data"
	FIELD_SIGNATURE    = "signature"
	FIELD_METHOD       = "method"
	FIELD_PARAMS       = "params"
	FIELD_CONTENT_TYPE = "contentType"
	FIELD_CONTENT      = "content"
)

// JSON-RPC methods exposed by the node.
const (
	METHOD_GET_LAST_BLOCK          = "icx_getLastBlock"
	METHOD_GET_BLOCK_BY_HEIGHT     = "icx_getBlockByHeight"
	METHOD_GET_BLOCK_BY_HASH       = "icx_getBlockByHash"
	METHOD_CALL                    = "icx_call"
	METHOD_GET_BALANCE             = "icx_getBalance"
	METHOD_GET_SCORE_API           = "icx_getScoreApi"
	METHOD_GET_TOTAL_SUPPLY        = "icx_getTotalSupply"
	METHOD_GET_TRANSACTION_RESULT  = "icx_getTransactionResult"
	METHOD_GET_TRANSACTION_BY_HASH = "icx_getTransactionByHash"
	METHOD_SEND_TRANSACTION        = "icx_sendTransaction"
	METHOD_DEBUG_ESTIMATE_STEP     = "debug_estimateStep"

	DEBUG_METHOD_PREFIX = "debug_"
)

const (
	ZERO_CONTRACT_ADDRESS       = "cx0000000000000000000000000000000000000000"
	GOVERNANCE_CONTRACT_ADDRESS = "cx0000000000000000000000000000000000000001"
)

// JSON-RPC error codes returned by ICON nodes.
const (
	RPC_CODE_PARSE_ERROR      = -32700
	RPC_CODE_INVALID_REQUEST  = -32600
	RPC_CODE_METHOD_NOT_FOUND = -32601
	RPC_CODE_INVALID_PARAMS   = -32602
	RPC_CODE_INTERNAL_ERROR   = -32603
	RPC_CODE_SCORE_ERROR      = -32002
)
