package catalog

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cast"

	"github.com/JonasLimhi/Edmund-Website/internal/logging"
	"github.com/JonasLimhi/Edmund-Website/internal/models"
	"github.com/JonasLimhi/Edmund-Website/internal/store"
)

// PlaceholderImage is substituted for products created or stored without an
// image URL. The exact URL is part of the persisted format.
const PlaceholderImage = "https://via.placeholder.com/400x300?text=No+Image"

// Manager owns the product collection. IDs come from a snowflake node:
// time-ordered and unique, the same property the original relied on by using
// creation timestamps as ids.
type Manager struct {
	backend store.Backend
	node    *snowflake.Node
}

func NewManager(backend store.Backend) (*Manager, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, err
	}
	return &Manager{backend: backend, node: node}, nil
}

// ParsePrice mirrors the loose numeric parsing of the storefront forms:
// invalid input yields NaN, which callers are expected to reject up front.
func ParsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// CoerceList turns a loosely typed request value into a list of strings.
// Anything that is not a valid sequence coerces to an empty list.
func CoerceList(v any) []string {
	if v == nil {
		return []string{}
	}
	items, err := cast.ToStringSliceE(v)
	if err != nil || items == nil {
		return []string{}
	}
	return items
}

func normalize(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func (m *Manager) Create(ctx context.Context, name, price, image, description string, colors, sizes []string) (models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create")

	product := models.Product{
		ID:          m.node.Generate().String(),
		Name:        name,
		Price:       ParsePrice(price),
		Image:       image,
		Description: description,
		Colors:      normalize(colors),
		Sizes:       normalize(sizes),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if product.Image == "" {
		product.Image = PlaceholderImage
	}

	products := store.Load[models.Product](m.backend, store.Products)
	products = append(products, product)
	if err := store.Save(m.backend, store.Products, products); err != nil {
		l.Error("create_product_error", "error", err)
		return models.Product{}, err
	}

	l.Info("create_product_success", "id", product.ID)
	return product, nil
}

func (m *Manager) GetByID(id string) (models.Product, bool) {
	for _, p := range store.Load[models.Product](m.backend, store.Products) {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (m *Manager) List() []models.Product {
	return store.Load[models.Product](m.backend, store.Products)
}

// UpdateRequest carries the partial-update fields. Name, Price and
// Description always overwrite; a blank Image keeps the stored one. Colors
// and Sizes distinguish "leave untouched" (nil) from "explicitly clear"
// (pointer to an empty slice).
type UpdateRequest struct {
	Name        string
	Price       string
	Image       string
	Description string
	Colors      *[]string
	Sizes       *[]string
}

// Update applies req to the product with the given id. An unknown id is
// reported as (zero, false, nil), not as an error.
func (m *Manager) Update(ctx context.Context, id string, req UpdateRequest) (models.Product, bool, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update", "id", id)

	products := store.Load[models.Product](m.backend, store.Products)
	for i := range products {
		if products[i].ID != id {
			continue
		}

		p := &products[i]
		p.Name = req.Name
		p.Price = ParsePrice(req.Price)
		p.Description = req.Description
		if req.Image != "" {
			p.Image = req.Image
		}
		if req.Colors != nil {
			p.Colors = normalize(*req.Colors)
		}
		if req.Sizes != nil {
			p.Sizes = normalize(*req.Sizes)
		}

		if err := store.Save(m.backend, store.Products, products); err != nil {
			l.Error("update_product_error", "error", err)
			return models.Product{}, false, err
		}
		l.Info("update_product_success")
		return *p, true, nil
	}

	return models.Product{}, false, nil
}

// Delete removes the product if present; deleting an unknown id is a no-op.
func (m *Manager) Delete(ctx context.Context, id string) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete", "id", id)

	products := store.Load[models.Product](m.backend, store.Products)
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}

	if err := store.Save(m.backend, store.Products, filtered); err != nil {
		l.Error("delete_product_error", "error", err)
		return err
	}
	l.Info("delete_product_success")
	return nil
}
