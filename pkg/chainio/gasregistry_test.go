package chainio

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
)

func TestGasRegistry_Balances_FormatsEther(t *testing.T) {
	env := newTestEnv(t)
	spent, _ := new(big.Int).SetString("250000000000000000", 10)
	left, _ := new(big.Int).SetString("1500000000000000000", 10)
	env.chain.OnCall(gasRegAddr, GasRegistryABI, "balances", func(args []interface{}) ([]interface{}, error) {
		return []interface{}{spent, left}, nil
	})

	b, err := NewGasRegistry(env.tx, gasRegAddr).Balances(context.Background(), env.signer.Address())

	require.NoError(t, err)
	assert.Equal(t, "0.25", b.ETHSpent)
	assert.Equal(t, "1.5", b.Balance)
	assert.Equal(t, left, b.BalanceWei)
}

func TestGasRegistry_GetBalance_ReadsUserBalance(t *testing.T) {
	env := newTestEnv(t)
	var queried common.Address
	env.chain.OnCall(gasRegAddr, GasRegistryABI, "getBalance", func(args []interface{}) ([]interface{}, error) {
		queried = args[0].(common.Address)
		return []interface{}{big.NewInt(99)}, nil
	})

	balance, err := NewGasRegistry(env.tx, gasRegAddr).GetBalance(context.Background(), env.signer.Address())

	require.NoError(t, err)
	assert.Equal(t, int64(99), balance.Int64())
	assert.Equal(t, env.signer.Address(), queried)
}

func TestGasRegistry_DepositETH_SendsValue(t *testing.T) {
	env := newTestEnv(t)
	var sentValue, arg *big.Int
	registerDeposit(env, func(_ common.Address, value *big.Int, args []interface{}) ([]*ethtypes.Log, error) {
		sentValue, arg = value, args[0].(*big.Int)
		return nil, nil
	})

	_, err := NewGasRegistry(env.tx, gasRegAddr).DepositETH(context.Background(), big.NewInt(1200))

	require.NoError(t, err)
	assert.Equal(t, int64(1200), sentValue.Int64())
	assert.Equal(t, int64(1200), arg.Int64())
}

func TestGasRegistry_PurchaseTG_PaysOneThousandthEtherPerTG(t *testing.T) {
	env := newTestEnv(t)
	var sentValue *big.Int
	env.chain.OnSend(gasRegAddr, GasRegistryABI, "purchaseTG", func(_ common.Address, value *big.Int, _ []interface{}) ([]*ethtypes.Log, error) {
		sentValue = value
		return nil, nil
	})

	_, err := NewGasRegistry(env.tx, gasRegAddr).PurchaseTG(context.Background(), big.NewInt(3))

	require.NoError(t, err)
	assert.Equal(t, "3000000000000000", sentValue.String())
}

func TestGasRegistry_ClaimETHForTG_ParsesDecimalAmount(t *testing.T) {
	env := newTestEnv(t)
	var claimed *big.Int
	env.chain.OnSend(gasRegAddr, GasRegistryABI, "claimETHForTG", func(_ common.Address, _ *big.Int, args []interface{}) ([]*ethtypes.Log, error) {
		claimed = args[0].(*big.Int)
		return nil, nil
	})
	reg := NewGasRegistry(env.tx, gasRegAddr)

	_, err := reg.ClaimETHForTG(context.Background(), "2.5")
	require.NoError(t, err)
	assert.Equal(t, "2500000000000000000", claimed.String())

	_, err = reg.ClaimETHForTG(context.Background(), "two")
	assert.ErrorIs(t, err, pkgErrors.ErrValidation)
}

func TestGasRegistry_NonPositiveAmounts_AreRejected(t *testing.T) {
	env := newTestEnv(t)
	reg := NewGasRegistry(env.tx, gasRegAddr)

	_, err := reg.DepositETH(context.Background(), big.NewInt(0))
	assert.ErrorIs(t, err, pkgErrors.ErrValidation)
	_, err = reg.WithdrawETH(context.Background(), nil)
	assert.ErrorIs(t, err, pkgErrors.ErrValidation)
	assert.Empty(t, env.chain.Sent)
}
