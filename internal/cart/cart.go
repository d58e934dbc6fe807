package cart

import (
	"context"
	"errors"

	"github.com/JonasLimhi/Edmund-Website/internal/logging"
	"github.com/JonasLimhi/Edmund-Website/internal/models"
	"github.com/JonasLimhi/Edmund-Website/internal/store"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Composer accumulates cart line items. The cart is append-only until an
// external collaborator clears it.
type Composer struct {
	backend store.Backend
}

func NewComposer(backend store.Backend) *Composer {
	return &Composer{backend: backend}
}

func (c *Composer) Items() []models.CartItem {
	return store.Load[models.CartItem](c.backend, store.Cart)
}

// AddItem appends a line item. Repeated adds of the same product and variant
// stay separate lines; the price is the caller's snapshot, not a live link.
// A quantity below 1 is rejected without touching the cart.
func (c *Composer) AddItem(ctx context.Context, item models.CartItem) error {
	l := logging.FromContext(ctx).With("svc", "cart.add", "product_id", item.ProductID)

	if item.Quantity < 1 {
		l.Warn("add_item_rejected", "reason", "quantity below 1")
		return ErrInvalidQuantity
	}

	items := c.Items()
	items = append(items, item)
	if err := store.Save(c.backend, store.Cart, items); err != nil {
		l.Error("add_item_error", "error", err)
		return err
	}

	l.Info("add_item_success", "quantity", item.Quantity)
	return nil
}

func (c *Composer) Clear(ctx context.Context) error {
	logging.FromContext(ctx).Info("cart_cleared", "svc", "cart.clear")
	return store.Clear(c.backend, store.Cart)
}
