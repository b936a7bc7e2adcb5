package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

const (
	testTarget = "0x49a81A591afdDEF973e6e49aaEa7d76943ef234C"
	testSafe   = "0x1111111111111111111111111111111111111111"
	testABI    = `[{"type":"function","name":"setValue","stateMutability":"nonpayable","inputs":[{"name":"a","type":"uint256"},{"name":"b","type":"address"}],"outputs":[]}]`
)

func validTimeInput() *types.JobInput {
	return &types.JobInput{
		Title:                 "interval job",
		TimeFrame:             36,
		Timezone:              "UTC",
		ChainID:               "84532",
		TargetContractAddress: testTarget,
		TargetFunction:        "setValue(uint256,address)",
		ABI:                   testABI,
		ArgType:               types.ArgTypeStatic,
		Arguments:             []string{"3", testSafe},
		WalletMode:            types.WalletModeRegular,
		Trigger:               &types.TimeTrigger{ScheduleType: types.ScheduleInterval, TimeInterval: 33},
	}
}

func upper(v float64) *float64 { return &v }

func requireField(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	e, ok := pkgErrors.As(err)
	require.True(t, ok, "expected structured error, got %v", err)
	assert.Equal(t, pkgErrors.KindValidation, e.Kind)
	assert.Equal(t, field, e.Field)
}

func TestValidateJobInput_ValidTimeJob_ReturnsNil(t *testing.T) {
	assert.NoError(t, ValidateJobInput(validTimeInput()))
}

func TestValidateJobInput_CommonFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(j *types.JobInput)
		field  string
	}{
		{"blank title", func(j *types.JobInput) { j.Title = "  " }, FieldJobTitle},
		{"zero timeframe", func(j *types.JobInput) { j.TimeFrame = 0 }, FieldTimeFrame},
		{"missing timezone", func(j *types.JobInput) { j.Timezone = "" }, FieldTimezone},
		{"unknown timezone", func(j *types.JobInput) { j.Timezone = "Mars/Base" }, FieldTimezone},
		{"missing chain", func(j *types.JobInput) { j.ChainID = "" }, FieldChainID},
		{"missing trigger", func(j *types.JobInput) { j.Trigger = nil }, FieldTrigger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validTimeInput()
			tt.mutate(input)
			requireField(t, ValidateJobInput(input), tt.field)
		})
	}
}

func TestValidateJobInput_IntervalExceedsTimeFrame_ReturnsTimeIntervalError(t *testing.T) {
	input := validTimeInput()
	input.Trigger = &types.TimeTrigger{ScheduleType: types.ScheduleInterval, TimeInterval: 37}

	requireField(t, ValidateJobInput(input), FieldTimeInterval)
}

func TestValidateJobInput_TimeSchedules(t *testing.T) {
	tests := []struct {
		name    string
		trigger *types.TimeTrigger
		field   string
	}{
		{"zero interval", &types.TimeTrigger{ScheduleType: types.ScheduleInterval}, FieldTimeInterval},
		{"missing cron", &types.TimeTrigger{ScheduleType: types.ScheduleCron}, FieldCronExpression},
		{"bad cron", &types.TimeTrigger{ScheduleType: types.ScheduleCron, CronExpression: "every day"}, FieldCronExpression},
		{"missing specific", &types.TimeTrigger{ScheduleType: types.ScheduleSpecific}, FieldSpecificSchedule},
		{"bad specific", &types.TimeTrigger{ScheduleType: types.ScheduleSpecific, SpecificSchedule: "tomorrow"}, FieldSpecificSchedule},
		{"unknown type", &types.TimeTrigger{ScheduleType: "weekly"}, FieldScheduleType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validTimeInput()
			input.Trigger = tt.trigger
			requireField(t, ValidateJobInput(input), tt.field)
		})
	}
}

func TestValidateJobInput_CronAndSpecific_Valid(t *testing.T) {
	input := validTimeInput()
	input.Trigger = &types.TimeTrigger{ScheduleType: types.ScheduleCron, CronExpression: "*/5 * * * *"}
	assert.NoError(t, ValidateJobInput(input))

	input.Trigger = &types.TimeTrigger{ScheduleType: types.ScheduleSpecific, SpecificSchedule: "2030-01-01 10:00:00"}
	assert.NoError(t, ValidateJobInput(input))
}

func TestValidateJobInput_EventTrigger(t *testing.T) {
	valid := &types.EventTrigger{TriggerChainID: "84532", TriggerContractAddress: testTarget, TriggerEvent: "Transfer(address,address,uint256)"}

	input := validTimeInput()
	input.Trigger = valid
	require.NoError(t, ValidateJobInput(input))

	bad := *valid
	bad.TriggerContractAddress = "0x12"
	input.Trigger = &bad
	requireField(t, ValidateJobInput(input), FieldEventContractAddress)

	bad = *valid
	bad.TriggerEvent = ""
	input.Trigger = &bad
	requireField(t, ValidateJobInput(input), FieldEventContractTarget)
}

func TestValidateJobInput_ConditionLimits(t *testing.T) {
	tests := []struct {
		name    string
		trigger *types.ConditionTrigger
		field   string
	}{
		{"between needs both", &types.ConditionTrigger{ConditionType: types.ConditionBetween, UpperLimit: upper(10)}, FieldLimits},
		{"greater needs upper", &types.ConditionTrigger{ConditionType: "greater_than", LowerLimit: upper(1)}, FieldLimits},
		{"bad source url", &types.ConditionTrigger{ConditionType: "greater_than", UpperLimit: upper(1), ValueSourceURL: "not a url"}, FieldSourceURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.trigger.ValueSourceType = "api"
			if tt.trigger.ValueSourceURL == "" {
				tt.trigger.ValueSourceURL = "https://api.example.com/price"
			}
			input := validTimeInput()
			input.Trigger = tt.trigger
			requireField(t, ValidateJobInput(input), tt.field)
		})
	}
}

func TestValidateJobInput_DynamicWithoutURL_ReturnsDynamicURLError(t *testing.T) {
	input := validTimeInput()
	input.ArgType = types.ArgTypeDynamic
	input.Arguments = nil

	requireField(t, ValidateJobInput(input), FieldDynamicArgsURL)
}

func TestValidateJobInput_StaticArgumentArity(t *testing.T) {
	input := validTimeInput()
	input.Arguments = []string{"3"}
	requireField(t, ValidateJobInput(input), FieldContractArgs)

	input.Arguments = []string{"3", testSafe, "extra"}
	requireField(t, ValidateJobInput(input), FieldContractArgs)

	input.Arguments = []string{"3", ""}
	requireField(t, ValidateJobInput(input), FieldContractArgs)
}

func TestValidateJobInput_InvalidABI_ReturnsABIError(t *testing.T) {
	input := validTimeInput()
	input.ABI = "{not json"

	requireField(t, ValidateJobInput(input), FieldContractABI)
}

func TestValidateJobInput_UnknownFunction_SkipsArity(t *testing.T) {
	input := validTimeInput()
	input.TargetFunction = "other(uint256)"
	input.Arguments = nil

	assert.NoError(t, ValidateJobInput(input))
}

func TestValidateJobInput_CustomScript(t *testing.T) {
	input := validTimeInput()
	input.Trigger = &types.CustomScriptTrigger{TimeInterval: 10, Language: "go"}
	input.Arguments = nil
	input.DynamicArgumentsScriptURL = "https://ipfs.io/ipfs/bafy"
	require.NoError(t, ValidateJobInput(input))

	input.Trigger = &types.CustomScriptTrigger{TimeInterval: 10}
	requireField(t, ValidateJobInput(input), FieldLanguage)
}

func TestValidateJobInput_CustomScript_NoTargetFunctionNeeded(t *testing.T) {
	input := validTimeInput()
	input.Trigger = &types.CustomScriptTrigger{TimeInterval: 37, Language: "ts"}
	input.TargetContractAddress = "0x0000000000000000000000000000000000000000"
	input.TargetFunction = ""
	input.ABI = "[]"
	input.Arguments = nil
	input.DynamicArgumentsScriptURL = "https://ipfs.io/ipfs/bafkrei"
	require.NoError(t, ValidateJobInput(input))

	input.DynamicArgumentsScriptURL = ""
	requireField(t, ValidateJobInput(input), FieldDynamicArgsURL)

	input.DynamicArgumentsScriptURL = "https://ipfs.io/ipfs/bafkrei"
	input.TargetContractAddress = "0x123"
	requireField(t, ValidateJobInput(input), FieldContractAddress)
}

func safeInput(txs ...types.SafeTransaction) *types.JobInput {
	input := validTimeInput()
	input.WalletMode = types.WalletModeSafe
	input.SafeAddress = testSafe
	input.SafeTransactions = txs
	input.Arguments = nil
	return input
}

func TestValidateJobInput_SafeTransactions(t *testing.T) {
	good := types.SafeTransaction{To: testTarget, Value: "0", Data: "0x"}
	require.NoError(t, ValidateJobInput(safeInput(good)))

	tests := []struct {
		name string
		tx   types.SafeTransaction
	}{
		{"bad to", types.SafeTransaction{To: "0x1", Value: "0", Data: "0x"}},
		{"bad value", types.SafeTransaction{To: testTarget, Value: "1.5", Data: "0x"}},
		{"bad data", types.SafeTransaction{To: testTarget, Value: "0", Data: "abc"}},
		{"odd data", types.SafeTransaction{To: testTarget, Value: "0", Data: "0xabc"}},
		{"bad operation", types.SafeTransaction{To: testTarget, Value: "0", Data: "0x", Operation: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireField(t, ValidateJobInput(safeInput(good, tt.tx)), FieldSafeTransactions)
		})
	}
}

func TestValidateJobInput_SafeStaticWithoutTransactions_ReturnsError(t *testing.T) {
	requireField(t, ValidateJobInput(safeInput()), FieldSafeTransactions)
}

func TestValidateJobInput_SafeBothURLAndTransactions_ReturnsError(t *testing.T) {
	input := safeInput(types.SafeTransaction{To: testTarget, Value: "0", Data: "0x"})
	input.ArgType = types.ArgTypeDynamic
	input.DynamicArgumentsScriptURL = "https://ipfs.io/ipfs/bafy"

	requireField(t, ValidateJobInput(input), FieldSafeTransactions)
}

func TestValidateJobInput_SafeMissingAddress_ReturnsError(t *testing.T) {
	input := safeInput(types.SafeTransaction{To: testTarget, Value: "0", Data: "0x"})
	input.SafeAddress = ""

	requireField(t, ValidateJobInput(input), FieldSafeAddress)
}
