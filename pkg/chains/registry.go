package chains

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
)

//go:embed chains.yaml
var defaultChainsYAML []byte

// ChainAddresses is the deployment record for one chain
type ChainAddresses struct {
	ChainID           string `yaml:"chainId" validate:"required,numeric"`
	Name              string `yaml:"name"`
	RPCURL            string `yaml:"rpcUrl" validate:"omitempty,url"`
	GasRegistry       string `yaml:"gasRegistry" validate:"omitempty,eth_addr"`
	JobRegistry       string `yaml:"jobRegistry" validate:"omitempty,eth_addr"`
	SafeFactory       string `yaml:"safeFactory" validate:"omitempty,eth_addr"`
	SafeModule        string `yaml:"safeModule" validate:"omitempty,eth_addr"`
	MultisendCallOnly string `yaml:"multisendCallOnly" validate:"omitempty,eth_addr"`
}

type chainsFile struct {
	Chains []ChainAddresses `yaml:"chains"`
}

// Registry is the immutable chain id -> addresses table. Build it once and pass it around.
type Registry struct {
	chains map[string]ChainAddresses
}

// NewRegistry validates records and indexes them by chain id; later duplicates override earlier ones
func NewRegistry(records []ChainAddresses) (*Registry, error) {
	validate := validator.New()
	r := &Registry{chains: make(map[string]ChainAddresses, len(records))}

	for _, rec := range records {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("invalid chain record %q: %w", rec.ChainID, err)
		}
		if existing, ok := r.chains[rec.ChainID]; ok {
			rec = merge(existing, rec)
		}
		r.chains[rec.ChainID] = rec
	}
	return r, nil
}

// DefaultRegistry returns the built-in table
func DefaultRegistry() (*Registry, error) {
	records, err := parse(defaultChainsYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in chain table: %w", err)
	}
	return NewRegistry(records)
}

// LoadRegistry returns the built-in table with the YAML file at path merged over it.
// An empty path yields the built-in table.
func LoadRegistry(path string) (*Registry, error) {
	records, err := parse(defaultChainsYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in chain table: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read chains file %s: %w", path, err)
		}
		overrides, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse chains file %s: %w", path, err)
		}
		records = append(records, overrides...)
	}

	return NewRegistry(records)
}

func parse(data []byte) ([]ChainAddresses, error) {
	var f chainsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Chains, nil
}

func merge(base, override ChainAddresses) ChainAddresses {
	pick := func(b, o string) string {
		if o != "" {
			return o
		}
		return b
	}
	return ChainAddresses{
		ChainID:           base.ChainID,
		Name:              pick(base.Name, override.Name),
		RPCURL:            pick(base.RPCURL, override.RPCURL),
		GasRegistry:       pick(base.GasRegistry, override.GasRegistry),
		JobRegistry:       pick(base.JobRegistry, override.JobRegistry),
		SafeFactory:       pick(base.SafeFactory, override.SafeFactory),
		SafeModule:        pick(base.SafeModule, override.SafeModule),
		MultisendCallOnly: pick(base.MultisendCallOnly, override.MultisendCallOnly),
	}
}

func (r *Registry) Lookup(chainID string) (ChainAddresses, bool) {
	c, ok := r.chains[chainID]
	return c, ok
}

// Get returns the record for chainID or a configuration error
func (r *Registry) Get(chainID string) (ChainAddresses, error) {
	c, ok := r.chains[chainID]
	if !ok {
		return ChainAddresses{}, pkgErrors.NewConfigurationError(fmt.Sprintf("chain %s is not supported", chainID))
	}
	return c, nil
}

// RPCURL returns the SDK-controlled RPC endpoint for chainID
func (r *Registry) RPCURL(chainID string) (string, error) {
	c, err := r.Get(chainID)
	if err != nil {
		return "", err
	}
	if c.RPCURL == "" {
		return "", pkgErrors.NewConfigurationError(fmt.Sprintf("RPC URL not configured for chain ID: %s", chainID))
	}
	return c.RPCURL, nil
}

// Require returns the named address from c or a configuration error when it is unset
func (c ChainAddresses) Require(name string) (string, error) {
	var addr string
	switch name {
	case "gasRegistry":
		addr = c.GasRegistry
	case "jobRegistry":
		addr = c.JobRegistry
	case "safeFactory":
		addr = c.SafeFactory
	case "safeModule":
		addr = c.SafeModule
	case "multisendCallOnly":
		addr = c.MultisendCallOnly
	default:
		return "", fmt.Errorf("unknown contract name %q", name)
	}
	if addr == "" {
		return "", pkgErrors.NewConfigurationError(fmt.Sprintf("%s address not configured for chain ID: %s", name, c.ChainID))
	}
	return addr, nil
}

func (r *Registry) ChainIDs() []string {
	ids := make([]string, 0, len(r.chains))
	for id := range r.chains {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
