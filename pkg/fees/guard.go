package fees

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/trigg3rX/triggerx-go-sdk/pkg/converter"
	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/logging"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/metrics"
)

// Escrow is the part of the gas registry the guard needs
type Escrow interface {
	GetBalance(ctx context.Context, user common.Address) (*big.Int, error)
	DepositETH(ctx context.Context, amount *big.Int) (*ethtypes.Receipt, error)
}

// GuardResult reports the balance seen before any top-up and what was deposited
type GuardResult struct {
	Balance   *big.Int
	Deposited *big.Int // nil when no deposit was made
}

// Guard makes sure the prepaid balance covers a job before it is created
type Guard struct {
	escrow Escrow
	logger logging.Logger
}

func NewGuard(escrow Escrow, logger logging.Logger) *Guard {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Guard{escrow: escrow, logger: logger}
}

// TopUpAmount is ceil(prediction * 1.2)
func TopUpAmount(prediction *big.Int) *big.Int {
	n := new(big.Int).Mul(prediction, big.NewInt(12))
	n.Add(n, big.NewInt(9))
	return n.Quo(n, big.NewInt(10))
}

// Ensure passes when balance >= prediction. Otherwise it deposits TopUpAmount(prediction)
// when autoTopUp is set, and fails with a balance error when it is not.
func (g *Guard) Ensure(ctx context.Context, user common.Address, prediction *big.Int, autoTopUp bool) (*GuardResult, error) {
	balance, err := g.escrow.GetBalance(ctx, user)
	if err != nil {
		return nil, err
	}
	result := &GuardResult{Balance: balance}

	if balance.Cmp(prediction) >= 0 {
		metrics.BalanceTopUpsTotal.WithLabelValues(metrics.StatusSkipped).Inc()
		return result, nil
	}

	if !autoTopUp {
		return nil, pkgErrors.NewBalanceError(
			"Insufficient ETH balance. Enable autotopup or deposit ETH to the gas registry.",
			prediction.String(), balance.String(), nil)
	}

	amount := TopUpAmount(prediction)
	g.logger.Info("Balance below job cost, depositing",
		"balance_eth", converter.FormatEther(balance),
		"required_eth", converter.FormatEther(prediction),
		"deposit_eth", converter.FormatEther(amount))

	if _, err := g.escrow.DepositETH(ctx, amount); err != nil {
		metrics.BalanceTopUpsTotal.WithLabelValues(metrics.StatusFailure).Inc()
		return nil, pkgErrors.NewBalanceError("Failed to deposit ETH balance", amount.String(), balance.String(), err)
	}
	metrics.BalanceTopUpsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	result.Deposited = amount
	return result, nil
}
