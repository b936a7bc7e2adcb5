package encoding

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

const multiSendABI = `[{"type":"function","name":"multiSend","stateMutability":"payable","inputs":[{"name":"transactions","type":"bytes"}],"outputs":[]}]`

var multiSendContract = mustParseABI(multiSendABI)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

// fixed part of each packed transaction: operation(1) to(20) value(32) dataLength(32)
const multisendHeaderLen = 1 + common.AddressLength + 32 + 32

// PackMultisendTransactions concatenates the transactions in order using the
// MultiSend packed layout. Every operation is checked before any bytes are produced.
func PackMultisendTransactions(txs []types.SafeTransaction) ([]byte, error) {
	for i, tx := range txs {
		if !tx.Operation.Valid() {
			return nil, fmt.Errorf("invalid Safe transaction operation at index %d: %d, expected 0 (CALL) or 1 (DELEGATECALL)", i, tx.Operation)
		}
	}

	var buf bytes.Buffer
	for i, tx := range txs {
		if !common.IsHexAddress(tx.To) {
			return nil, fmt.Errorf("invalid Safe transaction target at index %d: %q", i, tx.To)
		}
		value, ok := new(big.Int).SetString(strings.TrimSpace(tx.Value), 10)
		if !ok || value.Sign() < 0 || value.BitLen() > 256 {
			return nil, fmt.Errorf("invalid Safe transaction value at index %d: %q", i, tx.Value)
		}
		data, err := hexutil.Decode(tx.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid Safe transaction data at index %d: %w", i, err)
		}

		buf.WriteByte(byte(tx.Operation))
		buf.Write(common.HexToAddress(tx.To).Bytes())
		buf.Write(math.U256Bytes(value))
		buf.Write(math.U256Bytes(big.NewInt(int64(len(data)))))
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// EncodeMultisend returns the multiSend(bytes) calldata for txs
func EncodeMultisend(txs []types.SafeTransaction) ([]byte, error) {
	packed, err := PackMultisendTransactions(txs)
	if err != nil {
		return nil, err
	}
	return multiSendContract.Pack("multiSend", packed)
}

// DecodeMultisend reverses EncodeMultisend
func DecodeMultisend(calldata []byte) ([]types.SafeTransaction, error) {
	method := multiSendContract.Methods["multiSend"]
	if len(calldata) < 4 || !bytes.Equal(calldata[:4], method.ID) {
		return nil, fmt.Errorf("calldata is not a multiSend call")
	}
	values, err := method.Inputs.Unpack(calldata[4:])
	if err != nil {
		return nil, fmt.Errorf("failed to unpack multiSend calldata: %w", err)
	}
	packed, ok := values[0].([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected multiSend argument type %T", values[0])
	}
	return UnpackMultisendTransactions(packed)
}

func UnpackMultisendTransactions(packed []byte) ([]types.SafeTransaction, error) {
	var txs []types.SafeTransaction
	for offset := 0; offset < len(packed); {
		if len(packed)-offset < multisendHeaderLen {
			return nil, fmt.Errorf("truncated multisend transaction at offset %d", offset)
		}
		op := types.Operation(packed[offset])
		if !op.Valid() {
			return nil, fmt.Errorf("invalid operation %d at offset %d", op, offset)
		}
		to := common.BytesToAddress(packed[offset+1 : offset+21])
		value := new(big.Int).SetBytes(packed[offset+21 : offset+53])
		length := new(big.Int).SetBytes(packed[offset+53 : offset+85])
		offset += multisendHeaderLen

		if !length.IsInt64() || length.Int64() > int64(len(packed)-offset) {
			return nil, fmt.Errorf("multisend data length %s exceeds remaining %d bytes", length, len(packed)-offset)
		}
		n := int(length.Int64())
		txs = append(txs, types.SafeTransaction{
			To:        to.Hex(),
			Value:     value.String(),
			Data:      hexutil.Encode(packed[offset : offset+n]),
			Operation: op,
		})
		offset += n
	}
	return txs, nil
}

// BuildSafeArguments returns the execJobFromHub arguments for a static Safe job.
// One transaction is called directly; two or more go through the multisend contract by delegatecall.
func BuildSafeArguments(safeAddress string, txs []types.SafeTransaction, multisendCallOnly string) ([]string, error) {
	switch len(txs) {
	case 0:
		return nil, pkgErrors.NewValidationError("safeTransactions", "at least one Safe transaction is required")
	case 1:
		tx := txs[0]
		if !tx.Operation.Valid() {
			return nil, pkgErrors.NewValidationError("safeTransactions",
				fmt.Sprintf("invalid Safe transaction operation: %d", tx.Operation))
		}
		return []string{safeAddress, tx.To, tx.Value, tx.Data, fmt.Sprint(uint8(types.OperationCall))}, nil
	}

	if multisendCallOnly == "" {
		return nil, pkgErrors.NewConfigurationError("MultisendCallOnly address not configured for this chain.")
	}
	calldata, err := EncodeMultisend(txs)
	if err != nil {
		return nil, pkgErrors.NewValidationError("safeTransactions", err.Error())
	}
	return []string{safeAddress, multisendCallOnly, "0", hexutil.Encode(calldata), fmt.Sprint(uint8(types.OperationDelegateCall))}, nil
}
