package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/shopwice/internal/services"
	"github.com/example/shopwice/internal/utils"
)

// CatalogHandler manages category endpoints.
type CatalogHandler struct {
	svc      *services.CatalogService
	products *services.ProductService
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(svc *services.CatalogService, products *services.ProductService) *CatalogHandler {
	return &CatalogHandler{svc: svc, products: products}
}

// ListCategories returns paginated active categories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	views, total, err := h.svc.ListCategories(pg)
	if err != nil {
		return respondError(c, "Listing failed.", err)
	}
	return paginated(c, views, pg.Page, pg.Limit, total)
}

// Roots returns active top-level categories.
func (h *CatalogHandler) Roots(c *fiber.Ctx) error {
	views, err := h.svc.Roots()
	if err != nil {
		return respondError(c, "Listing failed.", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": views})
}

// GetCategory returns one category with breadcrumbs and children.
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	detail, err := h.svc.GetCategory(id)
	if err != nil {
		return respondError(c, "Lookup failed.", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": detail})
}

// CategoryProducts lists active products in a category, including its
// subcategories unless include_subcategories=false.
func (h *CatalogHandler) CategoryProducts(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	includeSubcategories := boolFlag(c.Query("include_subcategories", "true"))
	ids, err := h.svc.CategoryTreeIDs(id, includeSubcategories)
	if err != nil {
		return respondError(c, "Lookup failed.", err)
	}

	filters := parseProductFilters(c)
	filters.CategoryIDs = ids

	pg := utils.ParsePagination(c)
	views, total, err := h.products.ListProducts(filters, pg)
	if err != nil {
		return respondError(c, "Listing failed.", err)
	}
	return paginated(c, views, pg.Page, pg.Limit, total)
}

// CreateCategory persists a new category.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	category, err := h.svc.CreateCategory(in)
	if err != nil {
		return respondError(c, "Category creation failed.", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": category})
}

// UpdateCategory applies changes to an existing category.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	category, err := h.svc.UpdateCategory(id, in)
	if err != nil {
		return respondError(c, "Category update failed.", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": category})
}

// DeleteCategory soft-deletes a category and its descendants.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.svc.DeleteCategory(id); err != nil {
		return respondError(c, "Category deletion failed.", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
