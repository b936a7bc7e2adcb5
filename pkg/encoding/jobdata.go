package encoding

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

var (
	uint256Type, _ = abi.NewType("uint256", "", nil)
	bytes32Type, _ = abi.NewType("bytes32", "", nil)
	boolType, _    = abi.NewType("bool", "", nil)
	stringType, _  = abi.NewType("string", "", nil)
	bytesType, _   = abi.NewType("bytes", "", nil)
)

// JobFields are the trigger values packed into the job registry's encodedData
type JobFields struct {
	TimeInterval int64
	Recurring    bool
	ScriptURL    string
	Language     string
}

// IPFSHash is keccak256 of the script URL, or the zero hash when there is none
func IPFSHash(scriptURL string) common.Hash {
	if scriptURL == "" {
		return common.Hash{}
	}
	return crypto.Keccak256Hash([]byte(scriptURL))
}

// TaskDefinitionID derives the job type code: base*2-1 for static, base*2 for dynamic,
// with base 1 time, 2 event, 3 condition. Custom scripts are always 7.
func TaskDefinitionID(kind types.JobKind, argType types.ArgType) (int, error) {
	var base int
	switch kind {
	case types.JobKindTime:
		base = 1
	case types.JobKindEvent:
		base = 2
	case types.JobKindCondition:
		base = 3
	case types.JobKindCustomScript:
		return types.TaskDefCustomScript, nil
	default:
		return 0, fmt.Errorf("unknown job kind %d", kind)
	}
	if argType.IsDynamic() {
		return base * 2, nil
	}
	return base*2 - 1, nil
}

// EncodeJobData ABI-encodes the tuple for the given task definition:
//
//	1: (uint256 interval)
//	2: (uint256 interval, bytes32 ipfsHash)
//	3, 5: (bool recurring)
//	4, 6: (bool recurring, bytes32 ipfsHash)
//	7: (uint256 interval, bytes32 ipfsHash, string language)
func EncodeJobData(taskDefinitionID int, f JobFields) ([]byte, error) {
	interval := big.NewInt(f.TimeInterval)
	hash := IPFSHash(f.ScriptURL)

	switch taskDefinitionID {
	case types.TaskDefTimeStatic:
		return abi.Arguments{{Type: uint256Type}}.Pack(interval)
	case types.TaskDefTimeDynamic:
		return abi.Arguments{{Type: uint256Type}, {Type: bytes32Type}}.Pack(interval, [32]byte(hash))
	case types.TaskDefEventStatic, types.TaskDefConditionStatic:
		return abi.Arguments{{Type: boolType}}.Pack(f.Recurring)
	case types.TaskDefEventDynamic, types.TaskDefConditionDynamic:
		return abi.Arguments{{Type: boolType}, {Type: bytes32Type}}.Pack(f.Recurring, [32]byte(hash))
	case types.TaskDefCustomScript:
		return abi.Arguments{{Type: uint256Type}, {Type: bytes32Type}, {Type: stringType}}.Pack(interval, [32]byte(hash), f.Language)
	default:
		return nil, fmt.Errorf("unsupported task definition id %d", taskDefinitionID)
	}
}

// FieldsFromInput collects the encoder fields carried by input's trigger
func FieldsFromInput(input *types.JobInput) JobFields {
	f := JobFields{
		Recurring: input.Recurring,
		ScriptURL: input.DynamicArgumentsScriptURL,
	}
	switch t := input.Trigger.(type) {
	case *types.TimeTrigger:
		f.TimeInterval = t.TimeInterval
	case *types.CustomScriptTrigger:
		f.TimeInterval = t.TimeInterval
		f.Language = t.Language
	}
	return f
}

// EncodeJobInput returns the task definition id and encoded data for a validated input
func EncodeJobInput(input *types.JobInput) (int, []byte, error) {
	taskDef, err := TaskDefinitionID(input.Kind(), input.EffectiveArgType())
	if err != nil {
		return 0, nil, err
	}
	data, err := EncodeJobData(taskDef, FieldsFromInput(input))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode job data: %w", err)
	}
	return taskDef, data, nil
}
