package jobs

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trigg3rX/triggerx-go-sdk/pkg/chainio"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/converter"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/encoding"
	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/fees"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/logging"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/metrics"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/parser"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/validation"
)

// Pipeline stage names, used as metric labels
const (
	StageValidate = "validate"
	StageSafe     = "safe"
	StageEncode   = "encode"
	StageFees     = "fees"
	StageSubmit   = "submit"
	StageRegister = "register"
)

// CreateJobOptions tunes a single CreateJob call
type CreateJobOptions struct {
	// EncodedData replaces the encoder output when set
	EncodedData []byte
}

// CreateJob validates input, prepares the Safe when needed, secures the fee, creates the job on
// chain and registers it with the API. Failures are reported in the result, never panicked.
func (s *Service) CreateJob(ctx context.Context, signer chainio.Signer, input *types.JobInput, opts CreateJobOptions) pkgErrors.Result[*types.CreateJobResponse] {
	resp, err := s.createJob(ctx, signer, input, opts)
	if err != nil {
		s.logger.Error("Job creation failed", "error", err)
		return pkgErrors.Fail[*types.CreateJobResponse](err, "Failed to create job")
	}
	return pkgErrors.OK(resp)
}

// jobRun carries the values one CreateJob call accumulates stage by stage
type jobRun struct {
	job      *types.JobInput
	user     common.Address
	chain    *chainContext
	module   string
	taskDef  int
	encoded  []byte
	estimate *types.FeeEstimate
	guard    *fees.GuardResult
	jobID    string
	logger   logging.Logger
}

func (s *Service) createJob(ctx context.Context, signer chainio.Signer, input *types.JobInput, opts CreateJobOptions) (*types.CreateJobResponse, error) {
	if err := s.requireAPIKey(); err != nil {
		return nil, err
	}
	if err := requireSigner(signer); err != nil {
		return nil, err
	}
	if input == nil {
		return nil, pkgErrors.NewValidationError(validation.FieldTrigger, "Job input is required.")
	}

	chainID, addrs, err := s.resolveChain(ctx, signer, input.ChainID)
	if err != nil {
		return nil, err
	}
	if addrs.JobRegistry == "" {
		return nil, pkgErrors.NewConfigurationError(fmt.Sprintf("JobRegistry address not configured for chain ID: %s", chainID))
	}

	run := &jobRun{job: input.Clone(), user: signer.Address()}
	run.job.ChainID = chainID
	run.logger = s.logger.With("job_title", run.job.Title, "chain_id", chainID, "user", run.user.Hex())

	if run.job.IsSafe() {
		module, err := addrs.Require("safeModule")
		if err != nil {
			return nil, err
		}
		run.module = module
		run.job.TargetContractAddress = module
		run.job.TargetFunction = types.SafeModuleTargetFunction
		run.job.ABI = types.SafeModuleABI
	}

	if err := stage(StageValidate, func() error { return validation.ValidateJobInput(run.job) }); err != nil {
		return nil, err
	}
	s.logNextExecution(run)

	if err := stage(StageEncode, func() error { return s.encode(run, addrs.MultisendCallOnly, opts) }); err != nil {
		return nil, err
	}

	run.chain, err = s.connect(ctx, signer, chainID, addrs)
	if err != nil {
		return nil, err
	}

	if run.job.IsSafe() {
		if err := stage(StageSafe, func() error { return s.configureSafe(ctx, run) }); err != nil {
			return nil, err
		}
	}

	if err := stage(StageFees, func() error { return s.secureFees(ctx, run) }); err != nil {
		return nil, err
	}

	if err := stage(StageSubmit, func() error { return s.submit(ctx, run) }); err != nil {
		return nil, err
	}

	var resp *types.CreateJobResponse
	if err := stage(StageRegister, func() error {
		var err error
		resp, err = s.backend.RegisterJob(ctx, buildJobData(run))
		return err
	}); err != nil {
		return nil, err
	}

	resp.RequiredETH = run.guard.Deposited
	resp.MaxTotalFee = run.estimate.MaxTotal
	metrics.JobsCreatedTotal.WithLabelValues(strconv.Itoa(run.taskDef)).Inc()
	run.logger.Info("Job created", "job_id", run.jobID, "task_definition_id", run.taskDef)
	return resp, nil
}

// encode fills the Safe action arguments and the createJob payload
func (s *Service) encode(run *jobRun, multisendCallOnly string, opts CreateJobOptions) error {
	job := run.job
	if job.IsSafe() && !job.EffectiveArgType().IsDynamic() {
		args, err := encoding.BuildSafeArguments(job.SafeAddress, job.SafeTransactions, multisendCallOnly)
		if err != nil {
			return err
		}
		job.Arguments = args
	}

	if opts.EncodedData != nil {
		taskDef, err := encoding.TaskDefinitionID(job.Kind(), job.EffectiveArgType())
		if err != nil {
			return err
		}
		run.taskDef, run.encoded = taskDef, opts.EncodedData
		return nil
	}

	taskDef, encoded, err := encoding.EncodeJobInput(job)
	if err != nil {
		return err
	}
	run.taskDef, run.encoded = taskDef, encoded
	return nil
}

func (s *Service) configureSafe(ctx context.Context, run *jobRun) error {
	safe := chainio.NewSafeWallet(run.chain.tx, common.HexToAddress(run.job.SafeAddress), s.safeHashMode)
	if err := safe.EnsureSingleOwner(ctx, run.user); err != nil {
		return pkgErrors.NewContractError("Failed to configure Safe wallet", err).
			WithDetail("safeAddress", run.job.SafeAddress)
	}
	if err := safe.EnableModule(ctx, common.HexToAddress(run.module)); err != nil {
		return pkgErrors.NewContractError("Failed to configure Safe wallet", err).
			WithDetail("safeAddress", run.job.SafeAddress).
			WithDetail("module", run.module)
	}
	return nil
}

func (s *Service) secureFees(ctx context.Context, run *jobRun) error {
	gasRegistry, err := run.chain.addresses.Require("gasRegistry")
	if err != nil {
		return err
	}

	run.estimate, err = fees.NewPredictor(s.backend, run.logger).Predict(ctx, run.job, run.taskDef, run.chain.id)
	if err != nil {
		return err
	}

	escrow := chainio.NewGasRegistry(run.chain.tx, common.HexToAddress(gasRegistry))
	run.guard, err = fees.NewGuard(escrow, run.logger).Ensure(ctx, run.user, run.estimate.Total, run.job.AutoTopUp)
	return err
}

func (s *Service) submit(ctx context.Context, run *jobRun) error {
	registry := chainio.NewJobRegistry(run.chain.tx, common.HexToAddress(run.chain.addresses.JobRegistry))
	jobID, receipt, err := registry.CreateJob(ctx, chainio.CreateJobParams{
		Title:            run.job.Title,
		TaskDefinitionID: run.taskDef,
		TimeFrame:        run.job.TimeFrame,
		TargetContract:   common.HexToAddress(run.job.TargetContractAddress),
		EncodedData:      run.encoded,
	})
	if err != nil {
		e := pkgErrors.NewContractError("Failed to create job on chain", err)
		if receipt != nil {
			e.WithDetail("txHash", receipt.TxHash.Hex())
		}
		return e
	}
	run.jobID = jobID
	run.logger.Info("Job created on chain", "job_id", jobID, "tx_hash", receipt.TxHash.Hex())
	return nil
}

func (s *Service) logNextExecution(run *jobRun) {
	t, ok := run.job.Trigger.(*types.TimeTrigger)
	if !ok {
		return
	}
	next, err := parser.NextExecutionTime(time.Now(), t, run.job.Timezone)
	if err != nil {
		run.logger.Debug("Could not compute next execution time", "error", err)
		return
	}
	run.logger.Info("First execution expected", "at", next.Format(time.RFC3339))
}

// buildJobData flattens the run into the API record
func buildJobData(run *jobRun) *types.CreateJobData {
	job := run.job
	balance := run.guard.Balance
	if balance == nil {
		balance = new(big.Int)
	}
	args := job.Arguments
	if args == nil {
		args = []string{}
	}

	d := &types.CreateJobData{
		JobID:                     run.jobID,
		UserAddress:               run.user.Hex(),
		EtherBalance:              balance,
		TokenBalance:              new(big.Int).Set(balance),
		JobTitle:                  job.Title,
		TaskDefinitionID:          run.taskDef,
		Custom:                    job.Kind() == types.JobKindCustomScript,
		TimeFrame:                 job.TimeFrame,
		Recurring:                 job.Recurring,
		JobCostPrediction:         converter.WeiToEtherFloat(run.estimate.Total),
		Timezone:                  job.Timezone,
		CreatedChainID:            run.chain.id,
		TargetChainID:             run.chain.id,
		TargetContractAddress:     job.TargetContractAddress,
		TargetFunction:            job.TargetFunction,
		ABI:                       job.ABI,
		ArgType:                   job.EffectiveArgType(),
		Arguments:                 args,
		DynamicArgumentsScriptURL: job.DynamicArgumentsScriptURL,
		IsImua:                    job.Imua(),
		IsSafe:                    job.IsSafe(),
		SafeName:                  job.SafeName,
		SafeAddress:               job.SafeAddress,
	}
	if d.TargetContractAddress == "" {
		d.TargetContractAddress = common.Address{}.Hex()
	}

	switch t := job.Trigger.(type) {
	case *types.TimeTrigger:
		d.ScheduleType = string(t.ScheduleType)
		d.TimeInterval = t.TimeInterval
		d.CronExpression = t.CronExpression
		d.SpecificSchedule = t.SpecificSchedule
	case *types.EventTrigger:
		d.TriggerChainID = t.TriggerChainID
		d.TriggerContractAddress = t.TriggerContractAddress
		d.TriggerEvent = t.TriggerEvent
		d.EventFilterParaName = t.EventFilterParaName
		d.EventFilterValue = t.EventFilterValue
	case *types.ConditionTrigger:
		d.ConditionType = t.ConditionType
		if t.UpperLimit != nil {
			d.UpperLimit = *t.UpperLimit
		}
		if t.LowerLimit != nil {
			d.LowerLimit = *t.LowerLimit
		}
		d.ValueSourceType = t.ValueSourceType
		d.ValueSourceURL = t.ValueSourceURL
		d.SelectedKeyRoute = t.SelectedKeyRoute
	case *types.CustomScriptTrigger:
		d.TimeInterval = t.TimeInterval
		d.Language = t.Language
	}
	return d
}
