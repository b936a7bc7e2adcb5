package chainio

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
)

func TestJobRegistry_CreateJob_ReturnsIDFromEvent(t *testing.T) {
	env := newTestEnv(t)
	var got []interface{}
	env.chain.OnSend(registryAddr, JobRegistryABI, "createJob", func(from common.Address, _ *big.Int, args []interface{}) ([]*ethtypes.Log, error) {
		got = args
		log, err := EventLog(registryAddr, JobRegistryABI.Events["JobCreated"], big.NewInt(42), from, big.NewInt(1))
		return []*ethtypes.Log{log}, err
	})

	reg := NewJobRegistry(env.tx, registryAddr)
	target := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	jobID, receipt, err := reg.CreateJob(context.Background(), CreateJobParams{
		Title:            "cron job",
		TaskDefinitionID: 1,
		TimeFrame:        3600,
		TargetContract:   target,
		EncodedData:      []byte{0x01},
	})

	require.NoError(t, err)
	assert.Equal(t, "42", jobID)
	assert.NotNil(t, receipt)
	require.Len(t, got, 5)
	assert.Equal(t, "cron job", got[0])
	assert.Equal(t, int64(3600), got[2].(*big.Int).Int64())
	assert.Equal(t, target, got[3])
}

func TestJobRegistry_CreateJob_NoEvent_ReturnsContractError(t *testing.T) {
	env := newTestEnv(t)
	env.chain.OnSend(registryAddr, JobRegistryABI, "createJob", noLogs)

	_, _, err := NewJobRegistry(env.tx, registryAddr).CreateJob(context.Background(), CreateJobParams{
		Title: "t", TaskDefinitionID: 1, TimeFrame: 1, EncodedData: []byte{},
	})

	assert.ErrorIs(t, err, pkgErrors.ErrContract)
	assert.Contains(t, err.Error(), "Job ID not found in contract events")
}

func TestJobIDFromReceipt_IgnoresUnrelatedLogs(t *testing.T) {
	other, err := EventLog(registryAddr, JobRegistryABI.Events["JobDeleted"], big.NewInt(1), common.Address{})
	require.NoError(t, err)
	created, err := EventLog(registryAddr, JobRegistryABI.Events["JobCreated"], big.NewInt(7), common.Address{}, big.NewInt(3))
	require.NoError(t, err)

	id, err := JobIDFromReceipt(&ethtypes.Receipt{Logs: []*ethtypes.Log{other, created}})

	require.NoError(t, err)
	assert.Equal(t, "7", id)
}

func TestJobRegistry_DeleteJob_InvalidID_ReturnsValidationError(t *testing.T) {
	env := newTestEnv(t)

	_, err := NewJobRegistry(env.tx, registryAddr).DeleteJob(context.Background(), "abc")

	assert.ErrorIs(t, err, pkgErrors.ErrValidation)
	assert.Empty(t, env.chain.Sent)
}

func TestJobRegistry_DeleteJob_SendsDeleteJob(t *testing.T) {
	env := newTestEnv(t)
	var deleted *big.Int
	env.chain.OnSend(registryAddr, JobRegistryABI, "deleteJob", func(_ common.Address, _ *big.Int, args []interface{}) ([]*ethtypes.Log, error) {
		deleted = args[0].(*big.Int)
		return nil, nil
	})

	_, err := NewJobRegistry(env.tx, registryAddr).DeleteJob(context.Background(), "15")

	require.NoError(t, err)
	assert.Equal(t, int64(15), deleted.Int64())
}
