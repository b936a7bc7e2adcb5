package chainio

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/logging"
)

const (
	DefaultReceiptPollInterval = 2 * time.Second
	DefaultReceiptTimeout      = 5 * time.Minute
)

// Contract is one address/ABI pair bound twice: read calls and estimates go
// through the SDK RPC, transactions through the signer's backend.
type Contract struct {
	Address common.Address
	ABI     abi.ABI
	read    *bind.BoundContract
	write   *bind.BoundContract
}

// Call runs a view method on the SDK RPC
func (c *Contract) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	var out []interface{}
	if err := c.read.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", method, c.Address.Hex(), err)
	}
	return out, nil
}

// TransactorOption customises a Transactor
type TransactorOption func(*Transactor)

func WithReceiptPolling(interval, timeout time.Duration) TransactorOption {
	return func(t *Transactor) {
		if interval > 0 {
			t.pollInterval = interval
		}
		if timeout > 0 {
			t.receiptTimeout = timeout
		}
	}
}

// Transactor sends the caller's contract transactions on one chain. Without a signer it can only read.
type Transactor struct {
	reader  Backend
	writer  Backend
	signer  Signer
	chainID *big.Int
	logger  logging.Logger

	pollInterval   time.Duration
	receiptTimeout time.Duration
}

func NewTransactor(reader Backend, signer Signer, chainID *big.Int, logger logging.Logger, opts ...TransactorOption) *Transactor {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	var writer Backend
	if signer != nil {
		writer = signer.Backend()
	}
	if writer == nil {
		writer = reader
	}
	t := &Transactor{
		reader:         reader,
		writer:         writer,
		signer:         signer,
		chainID:        chainID,
		logger:         logger,
		pollInterval:   DefaultReceiptPollInterval,
		receiptTimeout: DefaultReceiptTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transactor) ChainID() *big.Int { return t.chainID }

// Bind returns the read/write handles for address
func (t *Transactor) Bind(address common.Address, parsed abi.ABI) *Contract {
	return &Contract{
		Address: address,
		ABI:     parsed,
		read:    bind.NewBoundContract(address, parsed, t.reader, t.reader, t.reader),
		write:   bind.NewBoundContract(address, parsed, t.writer, t.writer, t.writer),
	}
}

// Send estimates on the SDK RPC, submits through the signer and waits for a successful receipt.
func (t *Transactor) Send(ctx context.Context, c *Contract, value *big.Int, method string, args ...interface{}) (*ethtypes.Receipt, error) {
	if t.signer == nil {
		return nil, pkgErrors.NewAuthenticationError(fmt.Sprintf("a signer is required to send %s", method), nil)
	}
	input, err := c.ABI.Pack(method, args...)
	if err != nil {
		return nil, pkgErrors.NewContractError(fmt.Sprintf("failed to pack %s arguments", method), err)
	}

	msg := ethereum.CallMsg{From: t.signer.Address(), To: &c.Address, Value: value, Data: input}
	strategy := ChooseGasStrategy(ctx, t.reader, msg, t.logger)

	opts := transactOpts(t.signer, t.chainID)
	opts.Context = ctx
	opts.Value = value
	opts.GasLimit = strategy.GasLimit()

	tx, err := c.write.RawTransact(opts, input)
	if err != nil {
		return nil, pkgErrors.NewContractError(fmt.Sprintf("failed to send %s transaction", method), err)
	}
	t.logger.Info("Transaction sent", "method", method, "tx_hash", tx.Hash().Hex(), "gas_strategy", strategy.String())

	receipt, err := t.WaitForReceipt(ctx, tx.Hash())
	if err != nil {
		return nil, err
	}
	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return receipt, pkgErrors.NewContractError(fmt.Sprintf("%s transaction %s reverted", method, tx.Hash().Hex()), nil).
			WithDetail("txHash", tx.Hash().Hex())
	}
	return receipt, nil
}

// WaitForReceipt polls the signer's backend and falls back to the SDK RPC when it errors
func (t *Transactor) WaitForReceipt(ctx context.Context, hash common.Hash) (*ethtypes.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, t.receiptTimeout)
	defer cancel()

	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := t.writer.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) && t.writer != t.reader {
			t.logger.Warn("Receipt lookup failed on signer backend, using SDK RPC", "tx_hash", hash.Hex(), "error", err)
			if receipt, rerr := t.reader.TransactionReceipt(ctx, hash); rerr == nil {
				return receipt, nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, pkgErrors.NewNetworkError(fmt.Sprintf("timed out waiting for receipt of %s", hash.Hex()), ctx.Err())
		case <-ticker.C:
		}
	}
}

// FindEvent returns the first log in receipt matching the event's signature
func FindEvent(receipt *ethtypes.Receipt, event abi.Event) (*ethtypes.Log, bool) {
	for _, l := range receipt.Logs {
		if l != nil && len(l.Topics) > 0 && l.Topics[0] == event.ID {
			return l, true
		}
	}
	return nil, false
}

// IndexedArgs decodes the indexed arguments of log as event, keyed by name
func IndexedArgs(event abi.Event, log *ethtypes.Log) (map[string]interface{}, error) {
	var indexed abi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	out := make(map[string]interface{}, len(indexed))
	if err := abi.ParseTopicsIntoMap(out, indexed, log.Topics[1:]); err != nil {
		return nil, fmt.Errorf("failed to parse %s topics: %w", event.Name, err)
	}
	return out, nil
}
