package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/qkit-edu/qkit/pkg/domain"
)

// OrderAPI is the part of the client OrderStore uses.
type OrderAPI interface {
	ListAdminOrders(ctx context.Context, page, limit int) (*domain.DataPage[domain.Order], error)
}

// OrderStore holds the admin order list.
type OrderStore struct {
	api OrderAPI
	log zerolog.Logger

	orders Slice[domain.Order]
}

// NewOrderStore returns an empty order store backed by api.
func NewOrderStore(api OrderAPI, logger zerolog.Logger) *OrderStore {
	return &OrderStore{api: api, log: logger.With().Str("store", "order").Logger()}
}

// FetchAdminOrders loads one page of every user's orders.
func (s *OrderStore) FetchAdminOrders(ctx context.Context, page, limit int) error {
	return s.orders.load(s.log, "FetchAdminOrders", msgUnknown, func() ([]domain.Order, domain.Meta, error) {
		p, err := s.api.ListAdminOrders(ctx, page, limit)
		if err != nil {
			return nil, domain.Meta{}, err
		}
		return p.Data, p.Meta, nil
	})
}

// Orders returns the admin order page state.
func (s *OrderStore) Orders() State[domain.Order] { return s.orders.Snapshot() }

// Revenue sums the paid totals of the loaded orders.
func (s *OrderStore) Revenue() float64 {
	var total float64
	for _, o := range s.orders.Snapshot().Items {
		if o.Status == domain.OrderCompleted {
			total += o.TotalPrice
		}
	}
	return total
}
