package types

import (
	"math/big"
	"time"
)

// CreateJobData is the record posted to the backend once the job exists on chain.
type CreateJobData struct {
	JobID        string   `json:"job_id" validate:"required,numeric"`
	UserAddress  string   `json:"user_address" validate:"required,eth_addr"`
	EtherBalance *big.Int `json:"ether_balance" validate:"required"`
	TokenBalance *big.Int `json:"token_balance" validate:"required"`

	JobTitle          string  `json:"job_title" validate:"required"`
	TaskDefinitionID  int     `json:"task_definition_id" validate:"min=1,max=7"`
	Custom            bool    `json:"custom"`
	TimeFrame         int64   `json:"time_frame" validate:"min=1"`
	Recurring         bool    `json:"recurring"`
	JobCostPrediction float64 `json:"job_cost_prediction" validate:"min=0"`
	Timezone          string  `json:"timezone" validate:"required"`
	CreatedChainID    string  `json:"created_chain_id" validate:"required,numeric"`

	ScheduleType     string `json:"schedule_type,omitempty" validate:"omitempty,oneof=interval cron specific"`
	TimeInterval     int64  `json:"time_interval,omitempty" validate:"omitempty,min=1"`
	CronExpression   string `json:"cron_expression,omitempty"`
	SpecificSchedule string `json:"specific_schedule,omitempty"`

	TriggerChainID         string `json:"trigger_chain_id,omitempty" validate:"omitempty,numeric"`
	TriggerContractAddress string `json:"trigger_contract_address,omitempty" validate:"omitempty,eth_addr"`
	TriggerEvent           string `json:"trigger_event,omitempty"`
	EventFilterParaName    string `json:"event_filter_para_name,omitempty"`
	EventFilterValue       string `json:"event_filter_value,omitempty"`

	ConditionType    string  `json:"condition_type,omitempty"`
	UpperLimit       float64 `json:"upper_limit,omitempty"`
	LowerLimit       float64 `json:"lower_limit,omitempty"`
	ValueSourceType  string  `json:"value_source_type,omitempty"`
	ValueSourceURL   string  `json:"value_source_url,omitempty" validate:"omitempty,url"`
	SelectedKeyRoute string  `json:"selected_key_route,omitempty"`

	TargetChainID             string   `json:"target_chain_id" validate:"required,numeric"`
	TargetContractAddress     string   `json:"target_contract_address" validate:"required,eth_addr"`
	TargetFunction            string   `json:"target_function" validate:"required_unless=Custom true"`
	ABI                       string   `json:"abi" validate:"required_unless=Custom true"`
	ArgType                   ArgType  `json:"arg_type" validate:"oneof=1 2"`
	Arguments                 []string `json:"arguments"`
	DynamicArgumentsScriptURL string   `json:"dynamic_arguments_script_url,omitempty" validate:"omitempty,url"`

	IsImua      bool   `json:"is_imua"`
	IsSafe      bool   `json:"is_safe"`
	SafeName    string `json:"safe_name,omitempty"`
	SafeAddress string `json:"safe_address,omitempty" validate:"omitempty,eth_addr"`
	Language    string `json:"language,omitempty"`
}

// CreateJobResponse is the backend acknowledgement for POST /api/jobs.
type CreateJobResponse struct {
	Status            string         `json:"status,omitempty"`
	Message           string         `json:"message,omitempty"`
	Errors            map[string]any `json:"errors,omitempty"`
	UserID            int64          `json:"user_id,omitempty"`
	AccountBalance    *big.Int       `json:"account_balance,omitempty"`
	TokenBalance      *big.Int       `json:"token_balance,omitempty"`
	JobIDs            []string       `json:"job_ids,omitempty"`
	TaskDefinitionIDs []int          `json:"task_definition_ids,omitempty"`
	TimeFrames        []int64        `json:"time_frames,omitempty"`

	// Filled by the SDK, not the backend
	RequiredETH *big.Int `json:"requiredETH,omitempty"`
	MaxTotalFee *big.Int `json:"maxTotalFee,omitempty"`
}

// FeeEstimate is the parsed /api/fees answer, scaled to the whole job
type FeeEstimate struct {
	PerExecution *big.Int
	Executions   int64
	Total        *big.Int
	// MaxTotal is the backend's upper bound (total_fee), nil when absent
	MaxTotal *big.Int
}

type JobData struct {
	JobID             string    `json:"job_id"`
	JobTitle          string    `json:"job_title"`
	TaskDefinitionID  int       `json:"task_definition_id"`
	CreatedChainID    string    `json:"created_chain_id"`
	UserAddress       string    `json:"user_address"`
	LinkJobID         string    `json:"link_job_id"`
	ChainStatus       int       `json:"chain_status"`
	Timezone          string    `json:"timezone"`
	IsImua            bool      `json:"is_imua"`
	JobType           string    `json:"job_type"`
	TimeFrame         int64     `json:"time_frame"`
	Recurring         bool      `json:"recurring"`
	Status            string    `json:"status"`
	JobCostPrediction string    `json:"job_cost_prediction"`
	JobCostActual     string    `json:"job_cost_actual"`
	TaskIDs           []int64   `json:"task_ids"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	LastExecutedAt    time.Time `json:"last_executed_at"`
}

type TimeJobData struct {
	ScheduleType           string    `json:"schedule_type"`
	TimeInterval           int64     `json:"time_interval"`
	CronExpression         string    `json:"cron_expression"`
	SpecificSchedule       string    `json:"specific_schedule"`
	NextExecutionTimestamp time.Time `json:"next_execution_timestamp"`
	TargetFields
}

type EventJobData struct {
	Recurring              bool   `json:"recurring"`
	TriggerChainID         string `json:"trigger_chain_id"`
	TriggerContractAddress string `json:"trigger_contract_address"`
	TriggerEvent           string `json:"trigger_event"`
	TargetFields
}

type ConditionJobData struct {
	Recurring        bool    `json:"recurring"`
	ConditionType    string  `json:"condition_type"`
	UpperLimit       float64 `json:"upper_limit"`
	LowerLimit       float64 `json:"lower_limit"`
	ValueSourceType  string  `json:"value_source_type"`
	ValueSourceURL   string  `json:"value_source_url"`
	SelectedKeyRoute string  `json:"selected_key_route"`
	TargetFields
}

type TargetFields struct {
	TargetChainID             string   `json:"target_chain_id"`
	TargetContractAddress     string   `json:"target_contract_address"`
	TargetFunction            string   `json:"target_function"`
	ABI                       string   `json:"abi"`
	ArgType                   int      `json:"arg_type"`
	Arguments                 []string `json:"arguments"`
	DynamicArgumentsScriptURL string   `json:"dynamic_arguments_script_url"`
	IsCompleted               bool     `json:"is_completed"`
}

// JobResponse is one job as returned by the backend read endpoints
type JobResponse struct {
	JobData          JobData           `json:"job_data"`
	TimeJobData      *TimeJobData      `json:"time_job_data,omitempty"`
	EventJobData     *EventJobData     `json:"event_job_data,omitempty"`
	ConditionJobData *ConditionJobData `json:"condition_job_data,omitempty"`
}

type TaskData struct {
	TaskID             int64     `json:"task_id"`
	TaskNumber         int64     `json:"task_number"`
	TaskOpXCost        float64   `json:"task_opx_cost"`
	ExecutionTimestamp time.Time `json:"execution_timestamp"`
	ExecutionTxHash    string    `json:"execution_tx_hash"`
	TaskPerformerID    int64     `json:"task_performer_id"`
	TaskAttesterIDs    []int64   `json:"task_attester_ids"`
	TaskStatus         string    `json:"task_status"`
	IsAccepted         bool      `json:"is_accepted"`
	TxURL              string    `json:"tx_url"`
}

// JobWithTasks pairs a user's job with its executed tasks
type JobWithTasks struct {
	Job   JobResponse `json:"jobDetail"`
	Tasks []TaskData  `json:"taskData"`
}

type UserData struct {
	UserAddress   string    `json:"user_address"`
	EmailID       string    `json:"email_id"`
	JobIDs        []string  `json:"job_ids"`
	UserPoints    string    `json:"user_points"`
	TotalJobs     int64     `json:"total_jobs"`
	TotalTasks    int64     `json:"total_tasks"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// GasBalance is a user's escrow on the gas registry
type GasBalance struct {
	ETHSpentWei *big.Int `json:"ethSpentWei"`
	BalanceWei  *big.Int `json:"ethBalanceWei"`
	ETHSpent    string   `json:"ethSpent"`
	Balance     string   `json:"ethBalance"`
}

// SafeWalletResult is returned by Safe wallet creation
type SafeWalletResult struct {
	SafeAddress   string `json:"safeAddress"`
	CreationTx    string `json:"creationTxHash,omitempty"`
	ModuleEnabled bool   `json:"moduleEnabled"`
}

// TxResult describes a confirmed transaction sent by the SDK
type TxResult struct {
	TxHash      string `json:"transactionHash"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed"`
}
