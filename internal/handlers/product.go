package handlers

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JonasLimhi/Edmund-Website/internal/catalog"
	"github.com/JonasLimhi/Edmund-Website/internal/events"
	"github.com/JonasLimhi/Edmund-Website/internal/logging"
	"github.com/JonasLimhi/Edmund-Website/internal/transport"
)

type ProductHandler struct {
	Catalog *catalog.Manager
	Events  *events.Publisher
}

func (h *ProductHandler) publish(c echo.Context, topic string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Events.Publish(ctx, topic, event); err != nil {
		c.Logger().Errorf("event publish error: %v", err)
	}
}

// validPrice enforces the caller-side precondition: the core itself accepts
// whatever it is handed.
func validPrice(raw string) bool {
	price := catalog.ParsePrice(raw)
	return !math.IsNaN(price) && price >= 0
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.List())
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, ok := h.Catalog.GetByID(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Error("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if strings.TrimSpace(req.Name) == "" || !validPrice(req.Price) {
		l.Warn("product_create_error", "status", 400, "reason", "name and a valid price are required")
		return echo.NewHTTPError(http.StatusBadRequest, "name and a valid price are required")
	}

	product, err := h.Catalog.Create(ctx,
		strings.TrimSpace(req.Name),
		req.Price,
		strings.TrimSpace(req.Image),
		req.Description,
		catalog.CoerceList(req.Colors),
		catalog.CoerceList(req.Sizes),
	)
	if err != nil {
		l.Error("product_create_error", "status", 500, "reason", "cannot save product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save product")
	}

	h.publish(c, events.TopicProduct, map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("create_product_success")
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id := c.Param("id")

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Error("product_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if strings.TrimSpace(req.Name) == "" || !validPrice(req.Price) {
		l.Warn("product_patch_error", "status", 400, "reason", "name and a valid price are required")
		return echo.NewHTTPError(http.StatusBadRequest, "name and a valid price are required")
	}

	product, ok, err := h.Catalog.Update(ctx, id, catalog.UpdateRequest{
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Image:       strings.TrimSpace(req.Image),
		Description: req.Description,
		Colors:      req.Colors,
		Sizes:       req.Sizes,
	})
	if err != nil {
		l.Error("product_patch_error", "status", 500, "reason", "cannot save product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save product")
	}
	if !ok {
		l.Warn("product_patch_error", "status", 404, "reason", "product not found")
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	h.publish(c, events.TopicProduct, map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("patch_product_success")
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id := c.Param("id")
	if err := h.Catalog.Delete(ctx, id); err != nil {
		l.Error("product_delete_error", "status", 500, "reason", "cannot delete product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	h.publish(c, events.TopicProduct, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("delete_product_success")
	return c.NoContent(http.StatusNoContent)
}
