package types

// JobKind tags which trigger variant a JobInput carries
type JobKind int

const (
	JobKindTime JobKind = iota + 1
	JobKindEvent
	JobKindCondition
	JobKindCustomScript
)

func (k JobKind) String() string {
	switch k {
	case JobKindTime:
		return "time"
	case JobKindEvent:
		return "event"
	case JobKindCondition:
		return "condition"
	case JobKindCustomScript:
		return "custom_script"
	default:
		return "unknown"
	}
}

// Trigger is the sealed set of job trigger variants.
type Trigger interface {
	Kind() JobKind
	clone() Trigger
}

type TimeTrigger struct {
	ScheduleType     ScheduleType
	TimeInterval     int64 // seconds, for ScheduleInterval
	CronExpression   string
	SpecificSchedule string
}

type EventTrigger struct {
	TriggerChainID         string
	TriggerContractAddress string
	TriggerEvent           string
	EventFilterParaName    string
	EventFilterValue       string
}

type ConditionTrigger struct {
	ConditionType    string
	UpperLimit       *float64
	LowerLimit       *float64
	ValueSourceType  string
	ValueSourceURL   string
	SelectedKeyRoute string
}

// CustomScriptTrigger runs a user script every TimeInterval seconds; its arguments are always dynamic.
type CustomScriptTrigger struct {
	TimeInterval int64
	Language     string
}

func (*TimeTrigger) Kind() JobKind         { return JobKindTime }
func (*EventTrigger) Kind() JobKind        { return JobKindEvent }
func (*ConditionTrigger) Kind() JobKind    { return JobKindCondition }
func (*CustomScriptTrigger) Kind() JobKind { return JobKindCustomScript }

func (t *TimeTrigger) clone() Trigger  { c := *t; return &c }
func (t *EventTrigger) clone() Trigger { c := *t; return &c }
func (t *CustomScriptTrigger) clone() Trigger {
	c := *t
	return &c
}

func (t *ConditionTrigger) clone() Trigger {
	c := *t
	if t.UpperLimit != nil {
		v := *t.UpperLimit
		c.UpperLimit = &v
	}
	if t.LowerLimit != nil {
		v := *t.LowerLimit
		c.LowerLimit = &v
	}
	return &c
}

// JobInput is what a caller hands to the job creation pipeline.
type JobInput struct {
	Title     string
	TimeFrame int64 // seconds
	Timezone  string
	ChainID   string
	Recurring bool
	IsImua    *bool // nil means true

	TargetContractAddress     string
	TargetFunction            string
	ABI                       string
	ArgType                   ArgType
	Arguments                 []string
	DynamicArgumentsScriptURL string

	WalletMode       WalletMode
	SafeName         string
	SafeAddress      string
	SafeTransactions []SafeTransaction

	// AutoTopUp deposits into the gas registry when the prepaid balance cannot cover the job
	AutoTopUp bool

	Trigger Trigger
}

func (j *JobInput) Kind() JobKind {
	if j.Trigger == nil {
		return 0
	}
	return j.Trigger.Kind()
}

// EffectiveArgType resolves the argument mode; custom script jobs are always dynamic
func (j *JobInput) EffectiveArgType() ArgType {
	if j.Kind() == JobKindCustomScript {
		return ArgTypeDynamic
	}
	if j.ArgType == ArgTypeDynamic {
		return ArgTypeDynamic
	}
	return ArgTypeStatic
}

func (j *JobInput) IsSafe() bool {
	return j.WalletMode == WalletModeSafe
}

func (j *JobInput) Imua() bool {
	return j.IsImua == nil || *j.IsImua
}

// Clone returns a deep copy the pipeline may amend without touching the caller's value
func (j *JobInput) Clone() *JobInput {
	c := *j
	if j.IsImua != nil {
		v := *j.IsImua
		c.IsImua = &v
	}
	if j.Arguments != nil {
		c.Arguments = append([]string(nil), j.Arguments...)
	}
	if j.SafeTransactions != nil {
		c.SafeTransactions = append([]SafeTransaction(nil), j.SafeTransactions...)
	}
	if j.Trigger != nil {
		c.Trigger = j.Trigger.clone()
	}
	return &c
}
