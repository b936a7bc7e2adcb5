package chainio

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
)

// CreateJobParams are the createJob arguments
type CreateJobParams struct {
	Title            string
	TaskDefinitionID int
	TimeFrame        int64
	TargetContract   common.Address
	EncodedData      []byte
}

// JobRegistry wraps the job registry contract
type JobRegistry struct {
	tx       *Transactor
	contract *Contract
}

func NewJobRegistry(tx *Transactor, address common.Address) *JobRegistry {
	return &JobRegistry{tx: tx, contract: tx.Bind(address, JobRegistryABI)}
}

func (r *JobRegistry) Address() common.Address { return r.contract.Address }

// CreateJob submits createJob and returns the on-chain job id from the JobCreated event
func (r *JobRegistry) CreateJob(ctx context.Context, p CreateJobParams) (string, *ethtypes.Receipt, error) {
	receipt, err := r.tx.Send(ctx, r.contract, nil, "createJob",
		p.Title,
		big.NewInt(int64(p.TaskDefinitionID)),
		big.NewInt(p.TimeFrame),
		p.TargetContract,
		p.EncodedData,
	)
	if err != nil {
		return "", receipt, err
	}

	jobID, err := JobIDFromReceipt(receipt)
	if err != nil {
		return "", receipt, err
	}
	return jobID, receipt, nil
}

// JobIDFromReceipt reads the first indexed argument of the JobCreated event
func JobIDFromReceipt(receipt *ethtypes.Receipt) (string, error) {
	event := JobRegistryABI.Events["JobCreated"]
	log, ok := FindEvent(receipt, event)
	if !ok {
		return "", pkgErrors.NewContractError("Job ID not found in contract events", nil).
			WithDetail("txHash", receipt.TxHash.Hex())
	}
	args, err := IndexedArgs(event, log)
	if err != nil {
		return "", pkgErrors.NewContractError("Job ID not found in contract events", err)
	}
	id, ok := args["jobId"].(*big.Int)
	if !ok {
		return "", pkgErrors.NewContractError("Job ID not found in contract events", fmt.Errorf("unexpected jobId type %T", args["jobId"]))
	}
	return id.String(), nil
}

// DeleteJob removes jobID on chain
func (r *JobRegistry) DeleteJob(ctx context.Context, jobID string) (*ethtypes.Receipt, error) {
	id, ok := new(big.Int).SetString(jobID, 10)
	if !ok {
		return nil, pkgErrors.NewValidationError("jobId", fmt.Sprintf("invalid job id %q", jobID))
	}
	receipt, err := r.tx.Send(ctx, r.contract, nil, "deleteJob", id)
	if err != nil {
		return receipt, err
	}
	return receipt, nil
}
