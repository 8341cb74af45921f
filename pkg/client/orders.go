package client

import (
	"context"
	"fmt"

	"github.com/qkit-edu/qkit/pkg/domain"
)

// ListAdminOrders fetches one page of every order. Admin only.
// This endpoint answers with the {data, meta} envelope.
func (c *Client) ListAdminOrders(ctx context.Context, page, limit int) (*domain.DataPage[domain.Order], error) {
	var out domain.DataPage[domain.Order]
	if err := c.get(ctx, "/orders/admin?"+pageQuery(page, limit), &out); err != nil {
		return nil, fmt.Errorf("client.ListAdminOrders: %w", err)
	}
	return &out, nil
}
