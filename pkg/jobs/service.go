package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/trigg3rX/triggerx-go-sdk/pkg/chainio"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/chains"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/client/dbserver"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/config"
	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	httppkg "github.com/trigg3rX/triggerx-go-sdk/pkg/http"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/logging"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/metrics"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/retry"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

// Backend is the part of the TriggerX API the pipeline talks to
type Backend interface {
	APIKey() string
	GetFees(ctx context.Context, q types.FeeQuery) (*types.FeeResponse, error)
	RegisterJob(ctx context.Context, job *types.CreateJobData) (*types.CreateJobResponse, error)
	DeleteJob(ctx context.Context, jobID, userAddress string) error
}

var _ Backend = (*dbserver.DBServerClient)(nil)

// Option customises a Service
type Option func(*Service)

// WithReceiptPolling sets how often and how long transactions are awaited
func WithReceiptPolling(interval, timeout time.Duration) Option {
	return func(s *Service) {
		s.pollInterval = interval
		s.receiptTimeout = timeout
	}
}

// WithSafeHashMode selects where Safe transaction hashes are computed
func WithSafeHashMode(mode chainio.SafeHashMode) Option {
	return func(s *Service) { s.safeHashMode = mode }
}

// Service runs the job pipeline and the gas registry operations for a caller's signer
type Service struct {
	registry *chains.Registry
	provider *chainio.Provider
	backend  Backend
	logger   logging.Logger

	pollInterval   time.Duration
	receiptTimeout time.Duration
	safeHashMode   chainio.SafeHashMode
}

func NewService(registry *chains.Registry, provider *chainio.Provider, backend Backend, logger logging.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	s := &Service{
		registry:       registry,
		provider:       provider,
		backend:        backend,
		logger:         logger,
		pollInterval:   chainio.DefaultReceiptPollInterval,
		receiptTimeout: chainio.DefaultReceiptTimeout,
		safeHashMode:   chainio.SafeHashLocal,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig wires the chain table, the API client and the RPC provider from cfg.
// A nil logger gets a zap logger configured from cfg.
func NewFromConfig(cfg *config.Config, logger logging.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		zl, err := logging.NewZapLogger(logging.LoggerConfig{
			LogDir:        cfg.LogDir,
			ProcessName:   logging.SDKProcess,
			IsDevelopment: cfg.DevMode,
			UseColors:     cfg.DevMode,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		logger = zl
	}

	registry, err := chains.LoadRegistry(cfg.ChainsFile)
	if err != nil {
		return nil, err
	}

	httpClient, err := httppkg.NewHTTPClient(&httppkg.HTTPRetryConfig{
		RetryConfig:     retry.DefaultRetryConfig(),
		Timeout:         cfg.HTTPTimeout,
		IdleConnTimeout: cfg.HTTPTimeout,
		MaxResponseSize: 4096,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	backend, err := dbserver.NewDBServerClient(logger, cfg.APIURL, cfg.APIKey, httpClient)
	if err != nil {
		return nil, err
	}
	provider := chainio.NewProvider(registry, chainio.HTTPDialer(httpClient), logger)

	return NewService(registry, provider, backend, logger,
		WithReceiptPolling(cfg.ReceiptPollInterval, cfg.ReceiptTimeout)), nil
}

// chainContext is everything resolved for one call on one chain
type chainContext struct {
	id        string
	addresses chains.ChainAddresses
	tx        *chainio.Transactor
}

func (s *Service) requireAPIKey() error {
	if s.backend == nil || strings.TrimSpace(s.backend.APIKey()) == "" {
		return pkgErrors.NewAuthenticationError("API key is required. Set TRIGGERX_API_KEY or pass it to the client.", nil)
	}
	return nil
}

func requireSigner(signer chainio.Signer) error {
	if signer == nil {
		return pkgErrors.NewAuthenticationError("A signer is required.", nil)
	}
	return nil
}

// resolveChain finds the chain id and its addresses without touching the SDK RPC
func (s *Service) resolveChain(ctx context.Context, signer chainio.Signer, explicit string) (string, chains.ChainAddresses, error) {
	chainID, err := chainio.ResolveChainID(ctx, signer, explicit, s.logger)
	if err != nil {
		return "", chains.ChainAddresses{}, err
	}
	addrs, err := s.registry.Get(chainID)
	if err != nil {
		return "", chains.ChainAddresses{}, err
	}
	return chainID, addrs, nil
}

// connect opens the SDK RPC for chainID and binds signer to it
func (s *Service) connect(ctx context.Context, signer chainio.Signer, chainID string, addrs chains.ChainAddresses) (*chainContext, error) {
	id, err := chainio.ParseChainID(chainID)
	if err != nil {
		return nil, err
	}
	reader, err := s.provider.Reader(ctx, chainID)
	if err != nil {
		return nil, err
	}
	tx := chainio.NewTransactor(reader, signer, id, s.logger.With("chain_id", chainID),
		chainio.WithReceiptPolling(s.pollInterval, s.receiptTimeout))
	return &chainContext{id: chainID, addresses: addrs, tx: tx}, nil
}

// stage records the outcome of one pipeline step
func stage(name string, fn func() error) error {
	err := fn()
	metrics.PipelineStageTotal.WithLabelValues(name, metrics.StageStatus(err)).Inc()
	return err
}

func txResult(hash string, block, gasUsed uint64) *types.TxResult {
	return &types.TxResult{TxHash: hash, BlockNumber: block, GasUsed: gasUsed}
}
