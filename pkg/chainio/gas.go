package chainio

import (
	"context"

	"github.com/ethereum/go-ethereum"

	"github.com/trigg3rX/triggerx-go-sdk/pkg/logging"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/metrics"
)

// GasBufferPercent is added on top of a successful estimate
const GasBufferPercent = 10

type gasMode int

const (
	gasUnbounded gasMode = iota
	gasEstimated
)

// GasStrategy decides the gas limit of a transaction: either a buffered estimate,
// or no explicit limit so the sending node estimates on its own.
type GasStrategy struct {
	mode     gasMode
	estimate uint64
	limit    uint64
}

// Estimated buffers estimate by GasBufferPercent, rounding down
func Estimated(estimate uint64) GasStrategy {
	return GasStrategy{
		mode:     gasEstimated,
		estimate: estimate,
		limit:    estimate * (100 + GasBufferPercent) / 100,
	}
}

func Unbounded() GasStrategy {
	return GasStrategy{mode: gasUnbounded}
}

func (g GasStrategy) IsEstimated() bool { return g.mode == gasEstimated }

// GasLimit is the limit to submit with; 0 means none
func (g GasStrategy) GasLimit() uint64 { return g.limit }

func (g GasStrategy) String() string {
	if g.IsEstimated() {
		return "estimated"
	}
	return "unbounded"
}

// ChooseGasStrategy estimates msg on the SDK RPC. Estimation failures are not errors:
// they select Unbounded.
func ChooseGasStrategy(ctx context.Context, estimator ethereum.GasEstimator, msg ethereum.CallMsg, logger logging.Logger) GasStrategy {
	strategy := Unbounded()
	estimate, err := estimator.EstimateGas(ctx, msg)
	if err != nil {
		logger.Warn("Gas estimation failed, proceeding without gas limit", "error", err)
	} else {
		strategy = Estimated(estimate)
		logger.Debug("Gas estimated", "estimate", estimate, "gas_limit", strategy.GasLimit())
	}
	metrics.GasEstimationTotal.WithLabelValues(strategy.String()).Inc()
	return strategy
}
