package icon

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk client configuration, for example:
//
//	endpoint: https://lisbon.net.solidwallet.io
//	api_version: 3
//	nid: 0x2
//	step_limit: 200000
//	timeout: 15s
//	debug: false
type Config struct {
	Endpoint   string        `yaml:"endpoint"`
	APIVersion int           `yaml:"api_version"`
	NID        uint64        `yaml:"nid"`
	StepLimit  uint64        `yaml:"step_limit"`
	Timeout    time.Duration `yaml:"timeout"`
	Debug      bool          `yaml:"debug"`
}

func DefaultConfig() *Config {
	return &Config{
		Endpoint:   DEFAULT_MAINNET_ENDPOINT,
		APIVersion: DEFAULT_API_VERSION,
		NID:        MAINNET_NID,
		StepLimit:  DEFAULT_STEP_LIMIT,
		Timeout:    DEFAULT_REQUEST_TIMEOUT,
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed reading config file: %w", err)
	}

	return ParseConfig(fileBytes)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed unmarshalling config yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("%w: endpoint is empty", ErrInvalidConfig)
	}
	if c.APIVersion <= 0 {
		return fmt.Errorf("%w: api_version must be positive, got %d", ErrInvalidConfig, c.APIVersion)
	}
	if c.NID == 0 {
		return fmt.Errorf("%w: nid must not be zero", ErrInvalidConfig)
	}
	if c.StepLimit == 0 {
		return fmt.Errorf("%w: step_limit must not be zero", ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) Marshal() ([]byte, error) {
	marshalled, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed marshalling config yaml: %w", err)
	}
	return marshalled, nil
}

func (c *Config) NewProvider(logger *zap.Logger) (*HTTPProvider, error) {
	opts := []httpProviderOptFn{WithProviderLogger(logger)}
	if c.Timeout > 0 {
		opts = append(opts, WithTimeout(c.Timeout))
	}
	return NewHTTPProvider(c.Endpoint, c.APIVersion, opts...)
}

// NewClientFromConfig wires a provider, logger and wallet from cfg.
func NewClientFromConfig(cfg *Config, optFns ...iconClientOptFunc) (*IconClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Debug)

	provider, err := cfg.NewProvider(logger)
	if err != nil {
		return nil, fmt.Errorf("failed creating provider: %w", err)
	}

	opts := append([]iconClientOptFunc{
		WithNID(cfg.NID),
		WithStepLimit(cfg.StepLimit),
		WithClientLogger(logger),
	}, optFns...)

	return NewIconClient(provider, opts...), nil
}
