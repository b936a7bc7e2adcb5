package chainio

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/trigg3rX/triggerx-go-sdk/pkg/chains"
	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/logging"
)

// Backend is the subset of *ethclient.Client the SDK uses
type Backend interface {
	bind.ContractBackend
	ethereum.ChainIDReader
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
}

var _ Backend = (*ethclient.Client)(nil)

// DialFunc opens a Backend for an RPC URL
type DialFunc func(ctx context.Context, rpcURL string) (Backend, error)

// HTTPDialer returns a DialFunc whose JSON-RPC traffic goes through httpClient
func HTTPDialer(httpClient interface{ GetClient() *http.Client }) DialFunc {
	return func(ctx context.Context, rpcURL string) (Backend, error) {
		var opts []rpc.ClientOption
		if httpClient != nil {
			opts = append(opts, rpc.WithHTTPClient(httpClient.GetClient()))
		}
		c, err := rpc.DialOptions(ctx, rpcURL, opts...)
		if err != nil {
			return nil, err
		}
		return ethclient.NewClient(c), nil
	}
}

// Provider hands out SDK-controlled read backends per chain, dialing each RPC URL once.
type Provider struct {
	registry *chains.Registry
	dial     DialFunc
	logger   logging.Logger

	mu       sync.Mutex
	backends map[string]Backend
}

func NewProvider(registry *chains.Registry, dial DialFunc, logger logging.Logger) *Provider {
	if dial == nil {
		dial = HTTPDialer(nil)
	}
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Provider{
		registry: registry,
		dial:     dial,
		logger:   logger,
		backends: make(map[string]Backend),
	}
}

// Reader returns the SDK RPC backend for chainID
func (p *Provider) Reader(ctx context.Context, chainID string) (Backend, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if b, ok := p.backends[chainID]; ok {
		return b, nil
	}
	url, err := p.registry.RPCURL(chainID)
	if err != nil {
		return nil, err
	}
	b, err := p.dial(ctx, url)
	if err != nil {
		return nil, pkgErrors.NewNetworkError(fmt.Sprintf("failed to connect to RPC for chain %s", chainID), err)
	}
	p.logger.Debug("Connected SDK RPC", "chain_id", chainID)
	p.backends[chainID] = b
	return b, nil
}

// SetReader installs b as the read backend for chainID
func (p *Provider) SetReader(chainID string, b Backend) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.backends[chainID] = b
}

// ResolveChainID prefers explicit, then the chain of the signer's own backend
func ResolveChainID(ctx context.Context, signer Signer, explicit string, logger logging.Logger) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if signer != nil && signer.Backend() != nil {
		id, err := signer.Backend().ChainID(ctx)
		if err == nil && id != nil && id.Sign() > 0 {
			return id.String(), nil
		}
		if logger != nil {
			logger.Warn("Could not get chain ID from signer backend", "error", err)
		}
	}
	return "", pkgErrors.NewConfigurationError("Chain ID is required. Provide chainId or use a signer with a working backend.")
}

// ParseChainID converts a decimal chain id string
func ParseChainID(chainID string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(chainID, 10)
	if !ok || id.Sign() <= 0 {
		return nil, pkgErrors.NewConfigurationError(fmt.Sprintf("invalid chain ID: %q", chainID))
	}
	return id, nil
}
