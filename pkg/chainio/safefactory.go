package chainio

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
)

// SafeFactory deploys single-owner Safes for users
type SafeFactory struct {
	tx       *Transactor
	contract *Contract
}

func NewSafeFactory(tx *Transactor, address common.Address) *SafeFactory {
	return &SafeFactory{tx: tx, contract: tx.Bind(address, SafeFactoryABI)}
}

// CreateSafeWallet deploys a Safe owned by user and returns its address.
// The address comes from SafeWalletCreated, or latestSafeWallet when the event is absent.
func (f *SafeFactory) CreateSafeWallet(ctx context.Context, user common.Address) (common.Address, *ethtypes.Receipt, error) {
	receipt, err := f.tx.Send(ctx, f.contract, nil, "createSafeWallet", user)
	if err != nil {
		return common.Address{}, receipt, err
	}

	event := SafeFactoryABI.Events["SafeWalletCreated"]
	if log, ok := FindEvent(receipt, event); ok {
		args, err := IndexedArgs(event, log)
		if err == nil {
			if addr, ok := args["safeWallet"].(common.Address); ok && addr != (common.Address{}) {
				return addr, receipt, nil
			}
		}
		f.tx.logger.Warn("Could not parse SafeWalletCreated event, falling back to latestSafeWallet", "error", err)
	}

	addr, err := f.addressCall(ctx, "latestSafeWallet", user)
	if err != nil {
		return common.Address{}, receipt, err
	}
	return addr, receipt, nil
}

func (f *SafeFactory) LatestSafeWallet(ctx context.Context, user common.Address) (common.Address, error) {
	return f.addressCall(ctx, "latestSafeWallet", user)
}

func (f *SafeFactory) PredictSafeAddress(ctx context.Context, user common.Address) (common.Address, error) {
	return f.addressCall(ctx, "predictSafeAddress", user)
}

func (f *SafeFactory) SafeWallets(ctx context.Context, user common.Address) ([]common.Address, error) {
	out, err := f.contract.Call(ctx, "getSafeWallets", user)
	if err != nil {
		return nil, pkgErrors.NewContractError("failed to read Safe wallets", err)
	}
	wallets, ok := out[0].([]common.Address)
	if !ok {
		return nil, pkgErrors.NewContractError(fmt.Sprintf("unexpected getSafeWallets result %T", out[0]), nil)
	}
	return wallets, nil
}

func (f *SafeFactory) addressCall(ctx context.Context, method string, user common.Address) (common.Address, error) {
	out, err := f.contract.Call(ctx, method, user)
	if err != nil {
		return common.Address{}, pkgErrors.NewContractError(fmt.Sprintf("failed to read %s", method), err)
	}
	addr, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, pkgErrors.NewContractError(fmt.Sprintf("unexpected %s result %T", method, out[0]), nil)
	}
	return addr, nil
}
