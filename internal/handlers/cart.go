package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JonasLimhi/Edmund-Website/internal/cart"
	"github.com/JonasLimhi/Edmund-Website/internal/events"
	"github.com/JonasLimhi/Edmund-Website/internal/logging"
	"github.com/JonasLimhi/Edmund-Website/internal/models"
	"github.com/JonasLimhi/Edmund-Website/internal/transport"
)

type CartHandler struct {
	Cart   *cart.Composer
	Events *events.Publisher
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Events.Publish(ctx, events.TopicCart, event); err != nil {
		c.Logger().Errorf("event publish error: %v", err)
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Cart.Items())
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Error("cart_add_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item := models.CartItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Color:     req.Color,
		Size:      req.Size,
		Quantity:  req.Quantity,
	}

	if err := h.Cart.AddItem(ctx, item); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			return echo.NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
		}
		l.Error("cart_add_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save cart")
	}

	h.publish(c, map[string]any{
		"type":      "cart_item_added",
		"productID": item.ProductID,
		"quantity":  item.Quantity,
	})

	l.Info("cart_add_success")
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.Cart.Clear(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot clear cart")
	}

	h.publish(c, map[string]any{"type": "cart_cleared"})
	return c.NoContent(http.StatusNoContent)
}
