package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/qkit-edu/qkit/pkg/domain"
)

// ListUsers fetches one page of accounts. Admin only.
func (c *Client) ListUsers(ctx context.Context, page, limit int) (*domain.Page[domain.User], error) {
	var out domain.Page[domain.User]
	if err := c.get(ctx, "/users?"+pageQuery(page, limit), &out); err != nil {
		return nil, fmt.Errorf("client.ListUsers: %w", err)
	}
	return &out, nil
}

// GetUser fetches a single account by ID.
func (c *Client) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/users/"+strconv.FormatInt(id, 10), &u); err != nil {
		return nil, fmt.Errorf("client.GetUser: %w", err)
	}
	return &u, nil
}
