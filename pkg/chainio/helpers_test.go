package chainio

import (
	"crypto/ecdsa"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/trigg3rX/triggerx-go-sdk/pkg/logging"
)

const testChainID = 84532

var (
	registryAddr = common.HexToAddress("0x1000000000000000000000000000000000000001")
	gasRegAddr   = common.HexToAddress("0x2000000000000000000000000000000000000002")
	safeAddr     = common.HexToAddress("0x3000000000000000000000000000000000000003")
	moduleAddr   = common.HexToAddress("0x4000000000000000000000000000000000000004")
	factoryAddr  = common.HexToAddress("0x5000000000000000000000000000000000000005")
)

type testEnv struct {
	chain  *FakeChain
	reader *FakeBackend
	writer *FakeBackend
	signer *KeySigner
	tx     *Transactor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	chain := NewFakeChain(testChainID)
	reader := chain.NewBackend()
	writer := chain.NewBackend()
	signer := NewKeySignerFromKey(key, writer)

	tx := NewTransactor(reader, signer, big.NewInt(testChainID), logging.NewNoOpLogger(),
		WithReceiptPolling(time.Millisecond, 200*time.Millisecond))
	return &testEnv{chain: chain, reader: reader, writer: writer, signer: signer, tx: tx}
}

func mustKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key
}
