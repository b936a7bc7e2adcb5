package chainio

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/trigg3rX/triggerx-go-sdk/pkg/converter"
	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

// WeiPerTG is the purchase price of one TG
var WeiPerTG = big.NewInt(1_000_000_000_000_000)

// GasRegistry wraps the prepaid ETH escrow that pays for job execution
type GasRegistry struct {
	tx       *Transactor
	contract *Contract
}

func NewGasRegistry(tx *Transactor, address common.Address) *GasRegistry {
	return &GasRegistry{tx: tx, contract: tx.Bind(address, GasRegistryABI)}
}

// GetBalance returns the user's spendable balance in wei
func (g *GasRegistry) GetBalance(ctx context.Context, user common.Address) (*big.Int, error) {
	out, err := g.contract.Call(ctx, "getBalance", user)
	if err != nil {
		return nil, pkgErrors.NewContractError("failed to read gas registry balance", err)
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, pkgErrors.NewContractError(fmt.Sprintf("unexpected getBalance result %T", out[0]), nil)
	}
	return balance, nil
}

// Balances returns the user's spent and remaining escrow
func (g *GasRegistry) Balances(ctx context.Context, user common.Address) (*types.GasBalance, error) {
	out, err := g.contract.Call(ctx, "balances", user)
	if err != nil {
		return nil, pkgErrors.NewContractError("failed to read gas registry balances", err)
	}
	spent, ok1 := out[0].(*big.Int)
	balance, ok2 := out[1].(*big.Int)
	if !ok1 || !ok2 {
		return nil, pkgErrors.NewContractError("unexpected balances result", nil)
	}
	return &types.GasBalance{
		ETHSpentWei: spent,
		BalanceWei:  balance,
		ETHSpent:    converter.FormatEther(spent),
		Balance:     converter.FormatEther(balance),
	}, nil
}

// DepositETH escrows amount wei for the signer
func (g *GasRegistry) DepositETH(ctx context.Context, amount *big.Int) (*ethtypes.Receipt, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, pkgErrors.NewValidationError("amount", "deposit amount must be positive")
	}
	return g.tx.Send(ctx, g.contract, amount, "depositETH", amount)
}

// WithdrawETH returns amount wei of unspent escrow to the signer
func (g *GasRegistry) WithdrawETH(ctx context.Context, amount *big.Int) (*ethtypes.Receipt, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, pkgErrors.NewValidationError("amount", "withdraw amount must be positive")
	}
	return g.tx.Send(ctx, g.contract, nil, "withdrawETHBalance", amount)
}

// PurchaseTG buys tg units at WeiPerTG each
func (g *GasRegistry) PurchaseTG(ctx context.Context, tg *big.Int) (*ethtypes.Receipt, error) {
	if tg == nil || tg.Sign() <= 0 {
		return nil, pkgErrors.NewValidationError("amount", "TG amount must be positive")
	}
	value := new(big.Int).Mul(tg, WeiPerTG)
	return g.tx.Send(ctx, g.contract, value, "purchaseTG", tg)
}

// ClaimETHForTG redeems amountTG (a decimal TG amount, 18 decimals) for ETH
func (g *GasRegistry) ClaimETHForTG(ctx context.Context, amountTG string) (*ethtypes.Receipt, error) {
	amount, err := converter.ParseEther(amountTG)
	if err != nil {
		return nil, pkgErrors.NewValidationError("amount", err.Error())
	}
	if amount.Sign() <= 0 {
		return nil, pkgErrors.NewValidationError("amount", "TG amount must be positive")
	}
	return g.tx.Send(ctx, g.contract, nil, "claimETHForTG", amount)
}

// TGBalance returns the user's legacy TG balance in base units
func (g *GasRegistry) TGBalance(ctx context.Context, user common.Address) (*big.Int, error) {
	b, err := g.Balances(ctx, user)
	if err != nil {
		return nil, err
	}
	return b.BalanceWei, nil
}
