package fees

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"

	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

type MockQuoter struct {
	mock.Mock
}

func (m *MockQuoter) GetFees(ctx context.Context, q types.FeeQuery) (*types.FeeResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FeeResponse), args.Error(1)
}

type MockEscrow struct {
	mock.Mock
}

func (m *MockEscrow) GetBalance(ctx context.Context, user common.Address) (*big.Int, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockEscrow) DepositETH(ctx context.Context, amount *big.Int) (*ethtypes.Receipt, error) {
	args := m.Called(ctx, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ethtypes.Receipt), args.Error(1)
}
