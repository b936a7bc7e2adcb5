package fees

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/logging"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

// Quoter asks the backend for the per-execution fee of a job
type Quoter interface {
	GetFees(ctx context.Context, q types.FeeQuery) (*types.FeeResponse, error)
}

// Predictor turns a backend quote into the cost of the whole job
type Predictor struct {
	quoter Quoter
	logger logging.Logger
}

func NewPredictor(quoter Quoter, logger logging.Logger) *Predictor {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Predictor{quoter: quoter, logger: logger}
}

// Predict returns fee * Executions(input), in wei
func (p *Predictor) Predict(ctx context.Context, input *types.JobInput, taskDefinitionID int, chainID string) (*types.FeeEstimate, error) {
	q, err := NewQuery(input, taskDefinitionID, chainID)
	if err != nil {
		return nil, err
	}

	resp, err := p.quoter.GetFees(ctx, q)
	if err != nil {
		return nil, err
	}
	perExecution := resp.PerExecution()
	if perExecution == nil {
		return nil, pkgErrors.NewAPIError("fee response missing current_total_fee and total_fee", 0, nil)
	}

	executions := Executions(input)
	total := new(big.Int).Mul(perExecution, big.NewInt(executions))
	p.logger.Debug("Fee predicted",
		"per_execution_wei", perExecution.String(),
		"executions", executions,
		"total_wei", total.String())

	return &types.FeeEstimate{
		PerExecution: perExecution,
		Executions:   executions,
		Total:        total,
		MaxTotal:     resp.MaxTotal(),
	}, nil
}

// NewQuery builds the fee request for input; args is the JSON array of static arguments or empty
func NewQuery(input *types.JobInput, taskDefinitionID int, chainID string) (types.FeeQuery, error) {
	args := ""
	if len(input.Arguments) > 0 {
		b, err := json.Marshal(input.Arguments)
		if err != nil {
			return types.FeeQuery{}, fmt.Errorf("failed to encode fee arguments: %w", err)
		}
		args = string(b)
	}
	return types.FeeQuery{
		IPFSURL:               input.DynamicArgumentsScriptURL,
		TaskDefinitionID:      taskDefinitionID,
		TargetChainID:         chainID,
		TargetContractAddress: input.TargetContractAddress,
		TargetFunction:        input.TargetFunction,
		ABI:                   input.ABI,
		Args:                  args,
	}, nil
}
