package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/trigg3rX/triggerx-go-sdk/pkg/env"
)

const (
	DefaultAPIURL              = "https://data.triggerx.network"
	DefaultHTTPTimeout         = 30 * time.Second
	DefaultReceiptPollInterval = 2 * time.Second
	DefaultReceiptTimeout      = 5 * time.Minute
)

// Config holds the SDK settings resolved from the environment
type Config struct {
	APIKey string `validate:"required"`
	APIURL string `validate:"required,url"`

	// ChainsFile is merged over the built-in chain table when set
	ChainsFile string `validate:"omitempty,file"`

	HTTPTimeout         time.Duration `validate:"gt=0"`
	ReceiptPollInterval time.Duration `validate:"gt=0"`
	ReceiptTimeout      time.Duration `validate:"gtfield=ReceiptPollInterval"`

	DevMode bool
	LogDir  string
}

// Load reads .env files (if present) and then the process environment
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{
		APIKey:              env.GetEnvString("TRIGGERX_API_KEY", ""),
		APIURL:              env.GetEnvString("TRIGGERX_API_URL", DefaultAPIURL),
		ChainsFile:          env.GetEnvString("TRIGGERX_CHAINS_FILE", ""),
		HTTPTimeout:         env.GetEnvDuration("TRIGGERX_HTTP_TIMEOUT", DefaultHTTPTimeout),
		ReceiptPollInterval: env.GetEnvDuration("TRIGGERX_RECEIPT_POLL_INTERVAL", DefaultReceiptPollInterval),
		ReceiptTimeout:      env.GetEnvDuration("TRIGGERX_RECEIPT_TIMEOUT", DefaultReceiptTimeout),
		DevMode:             env.GetEnvBool("TRIGGERX_DEV_MODE", false),
		LogDir:              env.GetEnvString("TRIGGERX_LOG_DIR", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
