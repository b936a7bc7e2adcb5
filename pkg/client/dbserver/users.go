package dbserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

func (c *DBServerClient) GetUser(ctx context.Context, userAddress string) (*types.UserData, error) {
	var out types.UserData
	if err := c.do(ctx, "user", call{
		method:  http.MethodGet,
		route:   fmt.Sprintf("/api/users/%s", userAddress),
		user:    userAddress,
		failMsg: "Failed to fetch user data",
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
