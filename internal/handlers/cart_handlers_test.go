package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonasLimhi/Edmund-Website/internal/cart"
	"github.com/JonasLimhi/Edmund-Website/internal/events"
	"github.com/JonasLimhi/Edmund-Website/internal/logging"
	"github.com/JonasLimhi/Edmund-Website/internal/models"
	"github.com/JonasLimhi/Edmund-Website/internal/store"
)

func newCartHandler(t *testing.T) *CartHandler {
	t.Helper()

	producer, err := events.NewPublisher(logging.New("error"))
	require.NoError(t, err)

	return &CartHandler{Cart: cart.NewComposer(store.NewMemory()), Events: producer}
}

func TestAddToCart(t *testing.T) {
	handler := newCartHandler(t)

	c, rec := jsonContext(t, http.MethodPost, "/cart", map[string]any{
		"productId": "42",
		"name":      "Hoodie",
		"price":     49.99,
		"color":     "red",
		"size":      "M",
		"quantity":  2,
	})
	require.NoError(t, handler.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	items := handler.Cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, models.CartItem{
		ProductID: "42",
		Name:      "Hoodie",
		Price:     49.99,
		Color:     "red",
		Size:      "M",
		Quantity:  2,
	}, items[0])
}

func TestAddToCart_RejectsZeroQuantity(t *testing.T) {
	handler := newCartHandler(t)

	c, _ := jsonContext(t, http.MethodPost, "/cart", map[string]any{
		"productId": "42",
		"name":      "Hoodie",
		"price":     49.99,
		"quantity":  0,
	})
	err := handler.AddToCart(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Empty(t, handler.Cart.Items())
}

func TestGetCart(t *testing.T) {
	handler := newCartHandler(t)
	require.NoError(t, handler.Cart.AddItem(context.Background(), models.CartItem{ProductID: "42", Quantity: 1}))

	c, rec := jsonContext(t, http.MethodGet, "/cart", nil)
	require.NoError(t, handler.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 1)
}

func TestClearCart(t *testing.T) {
	handler := newCartHandler(t)
	require.NoError(t, handler.Cart.AddItem(context.Background(), models.CartItem{ProductID: "42", Quantity: 1}))

	c, rec := jsonContext(t, http.MethodDelete, "/cart", nil)
	require.NoError(t, handler.ClearCart(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, handler.Cart.Items())
}
