package client

import (
	"context"

	"murmur/internal/sns"
)

// FetchMe resolves the acting user: id, display name and tenant memberships.
// This is a plain action call; failures propagate.
func FetchMe(ctx context.Context, t *Transport, id Identity) (*sns.GetMeResponse, error) {
	var resp sns.GetMeResponse
	if err := t.Call(ctx, id, sns.ProcGetMe, sns.GetMeRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
