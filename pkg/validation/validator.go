package validation

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/parser"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

// Field names reported on validation errors
const (
	FieldJobTitle             = "jobTitle"
	FieldTimeFrame            = "timeframe"
	FieldTimezone             = "timezone"
	FieldChainID              = "chainId"
	FieldTrigger              = "trigger"
	FieldScheduleType         = "scheduleType"
	FieldTimeInterval         = "timeInterval"
	FieldCronExpression       = "cronExpression"
	FieldSpecificSchedule     = "specificSchedule"
	FieldLanguage             = "language"
	FieldTriggerChainID       = "triggerChainId"
	FieldEventContractAddress = "eventContractAddress"
	FieldEventContractTarget  = "eventContractTarget"
	FieldConditionType        = "contractConditionType"
	FieldSourceType           = "contractSourceType"
	FieldSourceURL            = "contractSourceUrl"
	FieldLimits               = "contractLimits"
	FieldContractAddress      = "contractAddress"
	FieldContractABI          = "contractABI"
	FieldContractTarget       = "contractTarget"
	FieldContractArgs         = "contractArgs"
	FieldDynamicArgsURL       = "dynamicArgumentsScriptUrl"
	FieldSafeAddress          = "safeAddress"
	FieldSafeTransactions     = "safeTransactions"
)

// ValidateJobInput checks input without touching the network and returns the first
// violation as a validation *errors.Error naming the offending field.
func ValidateJobInput(input *types.JobInput) error {
	if input == nil {
		return pkgErrors.NewValidationError(FieldTrigger, "Job input is required.")
	}
	if err := validateCommon(input); err != nil {
		return err
	}

	switch t := input.Trigger.(type) {
	case *types.TimeTrigger:
		if err := validateTimeTrigger(t, input.TimeFrame, input.Timezone); err != nil {
			return err
		}
	case *types.EventTrigger:
		if err := validateEventTrigger(t); err != nil {
			return err
		}
	case *types.ConditionTrigger:
		if err := validateConditionTrigger(t); err != nil {
			return err
		}
	case *types.CustomScriptTrigger:
		if err := validateCustomScriptTrigger(t, input.TimeFrame); err != nil {
			return err
		}
	default:
		return pkgErrors.NewValidationError(FieldTrigger, "Job trigger must be time, event, condition or custom script.")
	}

	if input.IsSafe() {
		return validateSafeWallet(input)
	}
	return validateRegularWallet(input)
}

func validateCommon(input *types.JobInput) error {
	if IsEmpty(input.Title) {
		return pkgErrors.NewValidationError(FieldJobTitle, "Job title is required.")
	}
	if input.TimeFrame <= 0 {
		return pkgErrors.NewValidationError(FieldTimeFrame, "Timeframe must be a positive number of seconds.")
	}
	if IsEmpty(input.Timezone) {
		return pkgErrors.NewValidationError(FieldTimezone, "Timezone is required.")
	}
	if _, err := parser.LoadLocation(input.Timezone); err != nil {
		return pkgErrors.NewValidationError(FieldTimezone, "Timezone must be a valid IANA time zone name.")
	}
	if IsEmpty(input.ChainID) {
		return pkgErrors.NewValidationError(FieldChainID, "Chain ID is required.")
	}
	return nil
}

func validateTimeTrigger(t *types.TimeTrigger, timeFrame int64, timezone string) error {
	switch t.ScheduleType {
	case types.ScheduleInterval:
		if t.TimeInterval <= 0 {
			return pkgErrors.NewValidationError(FieldTimeInterval, "timeInterval is required and must be > 0 when scheduleType is interval.")
		}
		if t.TimeInterval > timeFrame {
			return pkgErrors.NewValidationError(FieldTimeInterval, "Time interval cannot exceed the timeframe.")
		}
	case types.ScheduleCron:
		if IsEmpty(t.CronExpression) {
			return pkgErrors.NewValidationError(FieldCronExpression, "cronExpression is required when scheduleType is cron.")
		}
		if _, err := parser.ParseCron(t.CronExpression); err != nil {
			return pkgErrors.NewValidationError(FieldCronExpression, fmt.Sprintf("cronExpression is not a valid cron expression: %v", err))
		}
	case types.ScheduleSpecific:
		if IsEmpty(t.SpecificSchedule) {
			return pkgErrors.NewValidationError(FieldSpecificSchedule, "specificSchedule is required when scheduleType is specific.")
		}
		loc, _ := parser.LoadLocation(timezone)
		if _, err := parser.ParseSpecific(t.SpecificSchedule, loc); err != nil {
			return pkgErrors.NewValidationError(FieldSpecificSchedule, "specificSchedule must be a date-time such as 2006-01-02 15:04:05.")
		}
	default:
		return pkgErrors.NewValidationError(FieldScheduleType, "scheduleType must be one of interval | cron | specific.")
	}
	return nil
}

func validateEventTrigger(t *types.EventTrigger) error {
	if IsEmpty(t.TriggerChainID) {
		return pkgErrors.NewValidationError(FieldTriggerChainID, "Trigger chain ID is required.")
	}
	if IsEmpty(t.TriggerContractAddress) {
		return pkgErrors.NewValidationError(FieldEventContractAddress, "Contract address is required.")
	}
	if !IsValidAddress(t.TriggerContractAddress) {
		return pkgErrors.NewValidationError(FieldEventContractAddress, "Invalid contract address.")
	}
	if IsEmpty(t.TriggerEvent) {
		return pkgErrors.NewValidationError(FieldEventContractTarget, "Trigger event must be selected.")
	}
	return nil
}

func validateConditionTrigger(t *types.ConditionTrigger) error {
	if IsEmpty(t.ConditionType) {
		return pkgErrors.NewValidationError(FieldConditionType, "Condition type is required.")
	}
	if IsEmpty(t.ValueSourceType) {
		return pkgErrors.NewValidationError(FieldSourceType, "Value source type is required.")
	}
	if !IsValidURL(t.ValueSourceURL) {
		return pkgErrors.NewValidationError(FieldSourceURL, "Source URL is required and must be valid.")
	}
	if t.ConditionType == types.ConditionBetween {
		if t.UpperLimit == nil || t.LowerLimit == nil {
			return pkgErrors.NewValidationError(FieldLimits, "Both upper and lower limits are required.")
		}
		if *t.LowerLimit > *t.UpperLimit {
			return pkgErrors.NewValidationError(FieldLimits, "Lower limit cannot exceed the upper limit.")
		}
	} else if t.UpperLimit == nil {
		return pkgErrors.NewValidationError(FieldLimits, "Value is required.")
	}
	return nil
}

func validateCustomScriptTrigger(t *types.CustomScriptTrigger, timeFrame int64) error {
	if t.TimeInterval <= 0 {
		return pkgErrors.NewValidationError(FieldTimeInterval, "timeInterval must be > 0 for custom script jobs.")
	}
	if t.TimeInterval > timeFrame {
		return pkgErrors.NewValidationError(FieldTimeInterval, "Time interval cannot exceed the timeframe.")
	}
	if IsEmpty(t.Language) {
		return pkgErrors.NewValidationError(FieldLanguage, "Script language is required for custom script jobs.")
	}
	return nil
}

func validateSafeWallet(input *types.JobInput) error {
	if !IsValidAddress(input.SafeAddress) {
		return pkgErrors.NewValidationError(FieldSafeAddress, `safeAddress is required when walletMode is "safe". Call createSafeWallet first.`)
	}
	hasTransactions := len(input.SafeTransactions) > 0
	if hasTransactions && !IsEmpty(input.DynamicArgumentsScriptURL) {
		return pkgErrors.NewValidationError(FieldSafeTransactions, "Cannot provide both dynamicArgumentsScriptUrl and safeTransactions. Use one or the other.")
	}

	if input.EffectiveArgType().IsDynamic() {
		if hasTransactions {
			return pkgErrors.NewValidationError(FieldSafeTransactions, "safeTransactions cannot be used with the dynamic argument type.")
		}
		return validateDynamicURL(input.DynamicArgumentsScriptURL)
	}
	return validateSafeTransactions(input.SafeTransactions)
}

func validateRegularWallet(input *types.JobInput) error {
	// Custom scripts decide their own calls; only the script and a well-formed target remain.
	if input.Kind() == types.JobKindCustomScript {
		if !IsEmpty(input.TargetContractAddress) && !IsValidAddress(input.TargetContractAddress) {
			return pkgErrors.NewValidationError(FieldContractAddress, "Invalid contract address.")
		}
		return validateDynamicURL(input.DynamicArgumentsScriptURL)
	}
	if err := validateContractBasics(input.TargetContractAddress, input.ABI, input.TargetFunction); err != nil {
		return err
	}
	if input.EffectiveArgType().IsDynamic() {
		return validateDynamicURL(input.DynamicArgumentsScriptURL)
	}
	if !IsEmpty(input.DynamicArgumentsScriptURL) {
		return pkgErrors.NewValidationError(FieldDynamicArgsURL, "dynamicArgumentsScriptUrl must not be set for the static argument type.")
	}
	return validateStaticArguments(input.ABI, input.TargetFunction, input.Arguments)
}

func validateDynamicURL(url string) error {
	if !IsValidURL(url) {
		return pkgErrors.NewValidationError(FieldDynamicArgsURL, "Dynamic arguments script URL is required and must be valid for dynamic argument type.")
	}
	return nil
}

func validateContractBasics(address, abiJSON, targetFunction string) error {
	if IsEmpty(address) {
		return pkgErrors.NewValidationError(FieldContractAddress, "Contract address is required.")
	}
	if !IsValidAddress(address) {
		return pkgErrors.NewValidationError(FieldContractAddress, "Invalid contract address.")
	}
	if IsEmpty(abiJSON) {
		return pkgErrors.NewValidationError(FieldContractABI, "Contract ABI must be provided.")
	}
	if IsEmpty(targetFunction) {
		return pkgErrors.NewValidationError(FieldContractTarget, "Target function must be selected.")
	}
	return nil
}

// validateStaticArguments requires one non-empty argument per input of the target function.
// Functions absent from the ABI are not checked.
func validateStaticArguments(abiJSON, targetFunction string, args []string) error {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return pkgErrors.NewValidationError(FieldContractABI, "Contract ABI must be valid JSON array.")
	}

	method, ok := findMethod(parsed, targetFunction)
	if !ok || len(method.Inputs) == 0 {
		return nil
	}
	if len(args) != len(method.Inputs) {
		return pkgErrors.NewValidationError(FieldContractArgs,
			fmt.Sprintf("%s expects %d arguments for static argument type, got %d.", method.Sig, len(method.Inputs), len(args)))
	}
	for i := range method.Inputs {
		if IsEmpty(args[i]) {
			return pkgErrors.NewValidationError(FieldContractArgs, "All function arguments are required for static argument type.")
		}
	}
	return nil
}

// findMethod matches a canonical signature like transfer(address,uint256)
func findMethod(parsed abi.ABI, signature string) (abi.Method, bool) {
	signature = strings.ReplaceAll(strings.TrimSpace(signature), " ", "")
	for _, m := range parsed.Methods {
		if m.Sig == signature {
			return m, true
		}
	}
	return abi.Method{}, false
}

func validateSafeTransactions(txs []types.SafeTransaction) error {
	if len(txs) == 0 {
		return pkgErrors.NewValidationError(FieldSafeTransactions,
			"safeTransactions array is required and must contain at least one transaction for static safe wallet jobs.")
	}
	for i, tx := range txs {
		switch {
		case !IsValidAddress(tx.To):
			return pkgErrors.NewValidationError(FieldSafeTransactions,
				fmt.Sprintf("Transaction at index %d: 'to' must be a valid Ethereum address.", i))
		case !IsValidWei(tx.Value):
			return pkgErrors.NewValidationError(FieldSafeTransactions,
				fmt.Sprintf("Transaction at index %d: 'value' must be a string representing wei amount.", i))
		case !IsValidHexData(tx.Data):
			return pkgErrors.NewValidationError(FieldSafeTransactions,
				fmt.Sprintf("Transaction at index %d: 'data' must be a hex string starting with 0x.", i))
		case !tx.Operation.Valid():
			return pkgErrors.NewValidationError(FieldSafeTransactions,
				fmt.Sprintf("Transaction at index %d: 'operation' must be 0 (CALL) or 1 (DELEGATECALL).", i))
		}
	}
	return nil
}
