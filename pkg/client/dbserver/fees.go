package dbserver

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

// GetFees asks the API for the per-execution fee of a job
func (c *DBServerClient) GetFees(ctx context.Context, q types.FeeQuery) (*types.FeeResponse, error) {
	params := url.Values{}
	params.Set("ipfs_url", q.IPFSURL)
	params.Set("task_definition_id", strconv.Itoa(q.TaskDefinitionID))
	params.Set("target_chain_id", q.TargetChainID)
	params.Set("target_contract_address", q.TargetContractAddress)
	params.Set("target_function", q.TargetFunction)
	params.Set("abi", q.ABI)
	params.Set("args", q.Args)

	var resp types.FeeResponse
	if err := c.do(ctx, "fees", call{
		method:  http.MethodGet,
		route:   "/api/fees",
		query:   params,
		failMsg: "Failed to get job cost prediction",
	}, &resp); err != nil {
		return nil, err
	}
	if resp.PerExecution() == nil {
		return nil, pkgErrors.NewAPIError("Invalid response from /api/fees: missing current_total_fee and total_fee", 0, nil)
	}
	return &resp, nil
}
