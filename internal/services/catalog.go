package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/shopwice/internal/models"
	"github.com/example/shopwice/internal/utils"
)

// ErrNotFound is returned when a requested resource does not exist or is
// no longer active.
var ErrNotFound = errors.New("resource not found")

// CatalogService manages the category tree.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// CategoryInput carries category create/update fields.
type CategoryInput struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
	IsActive    *bool      `json:"is_active"`
}

// CategoryView is the list representation of a category with its counts.
type CategoryView struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description"`
	ParentID      *uuid.UUID `json:"parent_id"`
	IsActive      bool       `json:"is_active"`
	ChildrenCount int        `json:"children_count"`
	ProductCount  int        `json:"product_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CategoryDetail adds tree context to a single category.
type CategoryDetail struct {
	CategoryView
	Parent      *CategoryView       `json:"parent"`
	Children    []CategoryView      `json:"children"`
	Breadcrumbs []models.Breadcrumb `json:"breadcrumbs"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// loadActiveIndex pulls every active category in one query and indexes it
// for iterative tree walks.
func (s *CatalogService) loadActiveIndex() ([]models.Category, *categoryIndex, error) {
	var categories []models.Category
	if err := s.db.Where("is_active = ?", true).Order("name").Find(&categories).Error; err != nil {
		return nil, nil, err
	}
	return categories, newCategoryIndex(categories), nil
}

// directProductCounts returns active-product counts grouped by category.
func (s *CatalogService) directProductCounts() (map[uuid.UUID]int, error) {
	type row struct {
		CategoryID uuid.UUID
		N          int
	}
	var rows []row
	err := s.db.Model(&models.Product{}).
		Select("category_id, count(*) as n").
		Where("is_active = ?", true).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.N
	}
	return counts, nil
}

func makeView(c *models.Category, idx *categoryIndex, counts map[uuid.UUID]int) CategoryView {
	return CategoryView{
		ID:            c.ID,
		Name:          c.Name,
		Slug:          c.Slug,
		Description:   c.Description,
		ParentID:      c.ParentID,
		IsActive:      c.IsActive,
		ChildrenCount: idx.ChildrenCount(c.ID),
		ProductCount:  counts[c.ID],
		CreatedAt:     c.CreatedAt,
	}
}

// ListCategories returns all active categories ordered by name.
func (s *CatalogService) ListCategories(pg utils.Pagination) ([]CategoryView, int64, error) {
	categories, idx, err := s.loadActiveIndex()
	if err != nil {
		return nil, 0, err
	}
	counts, err := s.directProductCounts()
	if err != nil {
		return nil, 0, err
	}

	total := int64(len(categories))
	start := pg.Offset
	if start > len(categories) {
		start = len(categories)
	}
	end := start + pg.Limit
	if end > len(categories) {
		end = len(categories)
	}

	views := make([]CategoryView, 0, end-start)
	for i := start; i < end; i++ {
		views = append(views, makeView(&categories[i], idx, counts))
	}
	return views, total, nil
}

// Roots returns active top-level categories.
func (s *CatalogService) Roots() ([]CategoryView, error) {
	categories, idx, err := s.loadActiveIndex()
	if err != nil {
		return nil, err
	}
	counts, err := s.directProductCounts()
	if err != nil {
		return nil, err
	}
	var roots []CategoryView
	for i := range categories {
		if categories[i].ParentID == nil {
			roots = append(roots, makeView(&categories[i], idx, counts))
		}
	}
	return roots, nil
}

// GetCategory returns one category with parent, children, breadcrumbs and
// an aggregate product count covering the whole descendant set.
func (s *CatalogService) GetCategory(id uuid.UUID) (*CategoryDetail, error) {
	_, idx, err := s.loadActiveIndex()
	if err != nil {
		return nil, err
	}
	category, ok := idx.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	counts, err := s.directProductCounts()
	if err != nil {
		return nil, err
	}

	detail := &CategoryDetail{
		CategoryView: makeView(category, idx, counts),
		Breadcrumbs:  idx.Breadcrumbs(id),
		UpdatedAt:    category.UpdatedAt,
	}

	if category.ParentID != nil {
		if parent, ok := idx.byID[*category.ParentID]; ok {
			view := makeView(parent, idx, counts)
			detail.Parent = &view
		}
	}
	for _, child := range idx.children[id] {
		if child.IsActive {
			detail.Children = append(detail.Children, makeView(child, idx, counts))
		}
	}

	// Aggregate count spans the category and all its active descendants.
	aggregate := counts[id]
	for _, descID := range idx.DescendantIDs(id) {
		aggregate += counts[descID]
	}
	detail.ProductCount = aggregate

	return detail, nil
}

// CategoryTreeIDs returns the category's own id plus, when asked, all of
// its active descendants. Used for "include subcategories" listings.
func (s *CatalogService) CategoryTreeIDs(id uuid.UUID, includeSubcategories bool) ([]uuid.UUID, error) {
	_, idx, err := s.loadActiveIndex()
	if err != nil {
		return nil, err
	}
	if _, ok := idx.byID[id]; !ok {
		return nil, ErrNotFound
	}
	ids := []uuid.UUID{id}
	if includeSubcategories {
		ids = append(ids, idx.DescendantIDs(id)...)
	}
	return ids, nil
}

func (s *CatalogService) validateCategoryInput(in *CategoryInput, current *models.Category, idx *categoryIndex) error {
	errs := ValidationErrors{}

	in.Name = strings.TrimSpace(in.Name)
	if len(in.Name) < 2 {
		errs.Add("name", "Category name must be at least 2 characters long.")
	}
	if in.Slug == "" && in.Name != "" {
		in.Slug = utils.Slugify(in.Name)
	}

	var excludeID uuid.UUID
	if current != nil {
		excludeID = current.ID
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("name = ? AND id <> ?", in.Name, excludeID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		errs.Add("name", "A category with this name already exists.")
	}
	if err := s.db.Model(&models.Category{}).
		Where("slug = ? AND id <> ?", in.Slug, excludeID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		errs.Add("slug", "A category with this slug already exists.")
	}

	if in.ParentID != nil {
		if _, ok := idx.byID[*in.ParentID]; !ok {
			errs.Add("parent_id", "Parent category not found.")
		} else if current != nil {
			if *in.ParentID == current.ID {
				errs.Add("parent_id", "A category cannot be its own parent.")
			} else if idx.WouldCreateCycle(current.ID, *in.ParentID) {
				errs.Add("parent_id", "Cannot set parent to a descendant category. This would create a circular reference.")
			}
		}
	}

	if errs.Has() {
		return errs
	}
	return nil
}

// CreateCategory validates and persists a new category.
func (s *CatalogService) CreateCategory(in CategoryInput) (*models.Category, error) {
	_, idx, err := s.loadActiveIndex()
	if err != nil {
		return nil, err
	}
	if err := s.validateCategoryInput(&in, nil, idx); err != nil {
		return nil, err
	}

	category := models.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		ParentID:    in.ParentID,
		IsActive:    true,
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}

	if err := s.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, FieldError(NonFieldErrors, "A category with this name or slug already exists.")
		}
		return nil, err
	}
	return &category, nil
}

// UpdateCategory validates and applies changes, rejecting parent
// assignments that would close a cycle.
func (s *CatalogService) UpdateCategory(id uuid.UUID, in CategoryInput) (*models.Category, error) {
	_, idx, err := s.loadActiveIndex()
	if err != nil {
		return nil, err
	}
	category, ok := idx.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := s.validateCategoryInput(&in, category, idx); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":        in.Name,
		"slug":        in.Slug,
		"description": in.Description,
		"parent_id":   in.ParentID,
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}

	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, FieldError(NonFieldErrors, "A category with this name or slug already exists.")
		}
		return nil, err
	}
	return category, nil
}

// DeleteCategory soft-deletes the category and, transitively, all of its
// descendants by clearing is_active. Rows are never removed here.
func (s *CatalogService) DeleteCategory(id uuid.UUID) error {
	_, idx, err := s.loadActiveIndex()
	if err != nil {
		return err
	}
	if _, ok := idx.byID[id]; !ok {
		return ErrNotFound
	}

	ids := append([]uuid.UUID{id}, idx.DescendantIDs(id)...)
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Category{}).
			Where("id IN ?", ids).
			Update("is_active", false).Error
	})
}
