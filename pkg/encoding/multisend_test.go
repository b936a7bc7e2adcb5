package encoding

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

const (
	safeAddr      = "0x1111111111111111111111111111111111111111"
	multisendAddr = "0x9641d764fc13c8B624c04430C7356C1C7C8102e2"
	tokenAddr     = "0x2222222222222222222222222222222222222222"
	routerAddr    = "0x3333333333333333333333333333333333333333"
)

func approveAndSwap() []types.SafeTransaction {
	return []types.SafeTransaction{
		{
			To:        tokenAddr,
			Value:     "0",
			Data:      "0x095ea7b30000000000000000000000003333333333333333333333333333333333333333ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
			Operation: types.OperationCall,
		},
		{
			To:        routerAddr,
			Value:     "1000000000000000",
			Data:      "0x",
			Operation: types.OperationDelegateCall,
		},
	}
}

func TestMultisend_RoundTrip_IsByteExact(t *testing.T) {
	txs := approveAndSwap()

	calldata, err := EncodeMultisend(txs)
	require.NoError(t, err)
	decoded, err := DecodeMultisend(calldata)
	require.NoError(t, err)

	assert.Equal(t, txs, decoded)
}

func TestPackMultisendTransactions_Layout(t *testing.T) {
	packed, err := PackMultisendTransactions(approveAndSwap()[1:])
	require.NoError(t, err)

	require.Len(t, packed, multisendHeaderLen)
	assert.Equal(t, byte(1), packed[0])
	assert.Equal(t, "0x3333333333333333333333333333333333333333", hexutil.Encode(packed[1:21]))
	assert.Equal(t, "0x00000000000000000000000000000000000000000000000000038d7ea4c68000", hexutil.Encode(packed[21:53]))
	assert.Equal(t, make([]byte, 32), packed[53:85])
}

func TestPackMultisendTransactions_InvalidOperation_RejectsBeforeEncoding(t *testing.T) {
	txs := approveAndSwap()
	txs[0].Data = "not hex"
	txs[1].Operation = 2

	_, err := PackMultisendTransactions(txs)

	// the operation check runs first even though an earlier tx is malformed
	assert.ErrorContains(t, err, "invalid Safe transaction operation at index 1")
}

func TestDecodeMultisend_WrongSelector_ReturnsError(t *testing.T) {
	_, err := DecodeMultisend([]byte{0xde, 0xad, 0xbe, 0xef})

	assert.Error(t, err)
}

func TestUnpackMultisendTransactions_Truncated_ReturnsError(t *testing.T) {
	packed, err := PackMultisendTransactions(approveAndSwap()[:1])
	require.NoError(t, err)

	_, err = UnpackMultisendTransactions(packed[:len(packed)-1])

	assert.Error(t, err)
}

func TestBuildSafeArguments_SingleTransaction_CallsTargetDirectly(t *testing.T) {
	tx := approveAndSwap()[0]

	args, err := BuildSafeArguments(safeAddr, []types.SafeTransaction{tx}, "")

	require.NoError(t, err)
	assert.Equal(t, []string{safeAddr, tx.To, tx.Value, tx.Data, "0"}, args)
}

func TestBuildSafeArguments_MultipleTransactions_UsesMultisendDelegatecall(t *testing.T) {
	txs := approveAndSwap()

	args, err := BuildSafeArguments(safeAddr, txs, multisendAddr)
	require.NoError(t, err)

	require.Len(t, args, 5)
	assert.Equal(t, []string{safeAddr, multisendAddr, "0"}, args[:3])
	assert.Equal(t, "1", args[4])

	calldata, err := hexutil.Decode(args[3])
	require.NoError(t, err)
	decoded, err := DecodeMultisend(calldata)
	require.NoError(t, err)
	assert.Equal(t, txs, decoded)
}

func TestBuildSafeArguments_MultipleWithoutMultisend_ReturnsConfigurationError(t *testing.T) {
	_, err := BuildSafeArguments(safeAddr, approveAndSwap(), "")

	assert.ErrorIs(t, err, pkgErrors.ErrConfiguration)
}

func TestBuildSafeArguments_InvalidOperation_ReturnsValidationError(t *testing.T) {
	txs := approveAndSwap()
	txs[0].Operation = 3

	_, err := BuildSafeArguments(safeAddr, txs, multisendAddr)

	assert.ErrorIs(t, err, pkgErrors.ErrValidation)
}
