package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/shopwice/internal/services"
	"github.com/example/shopwice/internal/utils"
)

// ProductHandler manages product endpoints.
type ProductHandler struct {
	svc *services.ProductService
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(svc *services.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// parseProductFilters reads the combinable listing filters off the query
// string. Malformed values are skipped, not rejected.
func parseProductFilters(c *fiber.Ctx) services.ProductFilters {
	filters := services.ProductFilters{
		Brand:              c.Query("brand"),
		AvailabilityStatus: c.Query("availability_status"),
		MinPrice:           c.Query("min_price"),
		MaxPrice:           c.Query("max_price"),
		InStockOnly:        boolFlag(c.Query("in_stock_only")),
		OnSale:             boolFlag(c.Query("on_sale")),
		Ordering:           c.Query("ordering"),
	}
	if v := c.Query("category"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filters.CategoryIDs = []uuid.UUID{id}
		}
	}
	if v := c.Query("is_featured"); v != "" {
		featured := boolFlag(v)
		filters.Featured = &featured
	}
	return filters
}

// ListProducts returns paginated active products with optional filters.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	views, total, err := h.svc.ListProducts(parseProductFilters(c), pg)
	if err != nil {
		return respondError(c, "Listing failed.", err)
	}
	return paginated(c, views, pg.Page, pg.Limit, total)
}

// GetProduct returns one product with breadcrumbs and related products.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	detail, err := h.svc.GetProduct(id)
	if err != nil {
		return respondError(c, "Lookup failed.", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": detail})
}

// Search runs a free-text product search, combinable with the regular
// filters.
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   `Search query parameter "q" is required.`,
		})
	}

	pg := utils.ParsePagination(c)
	views, total, err := h.svc.SearchProducts(query, parseProductFilters(c), pg)
	if err != nil {
		return respondError(c, "Search failed.", err)
	}
	return paginated(c, views, pg.Page, pg.Limit, total)
}

// Featured returns up to 20 featured products.
func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	views, err := h.svc.FeaturedProducts()
	if err != nil {
		return respondError(c, "Listing failed.", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": views})
}

// Recommendations returns products similar to the given one.
func (h *ProductHandler) Recommendations(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	views, err := h.svc.Recommendations(id)
	if err != nil {
		return respondError(c, "Lookup failed.", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": views})
}

// CreateProduct handles product creation.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product, err := h.svc.CreateProduct(in)
	if err != nil {
		return respondError(c, "Product creation failed.", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// UpdateProduct applies changes to an existing product.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product, err := h.svc.UpdateProduct(id, in)
	if err != nil {
		return respondError(c, "Product update failed.", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": product})
}

// DeleteProduct soft-deletes a product.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.svc.DeleteProduct(id); err != nil {
		return respondError(c, "Product deletion failed.", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
