package client

import (
	"context"
	"fmt"

	"github.com/qkit-edu/qkit/pkg/domain"
)

// GetProfile returns the profile of the user owning the bearer token.
func (c *Client) GetProfile(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/profile", &u); err != nil {
		return nil, fmt.Errorf("client.GetProfile: %w", err)
	}
	return &u, nil
}

// Logout revokes the current bearer token on the server.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}
