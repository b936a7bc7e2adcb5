package types

// Task definition ids as registered on chain. 1-6 alternate static (odd) and dynamic (even) arguments.
const (
	TaskDefTimeStatic       = 1
	TaskDefTimeDynamic      = 2
	TaskDefEventStatic      = 3
	TaskDefEventDynamic     = 4
	TaskDefConditionStatic  = 5
	TaskDefConditionDynamic = 6
	TaskDefCustomScript     = 7
)

type ArgType int

const (
	ArgTypeStatic  ArgType = 1
	ArgTypeDynamic ArgType = 2
)

func (a ArgType) IsDynamic() bool { return a == ArgTypeDynamic }

type WalletMode string

const (
	WalletModeRegular WalletMode = "regular"
	WalletModeSafe    WalletMode = "safe"
)

type ScheduleType string

const (
	ScheduleInterval ScheduleType = "interval"
	ScheduleCron     ScheduleType = "cron"
	ScheduleSpecific ScheduleType = "specific"
)

const (
	ConditionBetween = "between"
)

const (
	// Backend ack status for records the backend refused
	StatusValidationFailed = "validation_failed"
)

// Safe module entry point the job registry calls for Safe-managed jobs
const (
	SafeModuleTargetFunction = "execJobFromHub(address,address,uint256,bytes,uint8)"
	SafeModuleABI            = `[{"type":"function","name":"execJobFromHub","stateMutability":"nonpayable","inputs":[{"name":"safeAddress","type":"address"},{"name":"actionTarget","type":"address"},{"name":"actionValue","type":"uint256"},{"name":"actionData","type":"bytes"},{"name":"operation","type":"uint8"}],"outputs":[{"type":"bool","name":"success"}]}]`
)
