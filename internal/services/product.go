package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/shopwice/internal/models"
	"github.com/example/shopwice/internal/utils"
)

// ProductService manages the product side of the catalog.
type ProductService struct {
	db      *gorm.DB
	catalog *CatalogService
}

// NewProductService constructs a ProductService.
func NewProductService(db *gorm.DB, catalog *CatalogService) *ProductService {
	return &ProductService{db: db, catalog: catalog}
}

// ProductFilters are the combinable listing filters. MinPrice/MaxPrice
// stay raw strings: non-numeric values are ignored, not rejected.
type ProductFilters struct {
	CategoryIDs        []uuid.UUID
	Brand              string
	Featured           *bool
	AvailabilityStatus string
	MinPrice           string
	MaxPrice           string
	InStockOnly        bool
	OnSale             bool
	Search             string
	Ordering           string
}

var orderingColumns = map[string]string{
	"name":           "name",
	"price":          "price",
	"created_at":     "created_at",
	"updated_at":     "updated_at",
	"stock_quantity": "stock_quantity",
}

func (f ProductFilters) apply(query *gorm.DB) *gorm.DB {
	if len(f.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", f.CategoryIDs)
	}
	if f.Brand != "" {
		query = query.Where("brand = ?", f.Brand)
	}
	if f.Featured != nil {
		query = query.Where("is_featured = ?", *f.Featured)
	}
	if f.AvailabilityStatus != "" {
		query = query.Where("availability_status = ?", f.AvailabilityStatus)
	}
	if f.MinPrice != "" {
		if val, err := strconv.ParseFloat(f.MinPrice, 64); err == nil {
			query = query.Where("price >= ?", val)
		}
	}
	if f.MaxPrice != "" {
		if val, err := strconv.ParseFloat(f.MaxPrice, 64); err == nil {
			query = query.Where("price <= ?", val)
		}
	}
	if f.InStockOnly {
		query = query.Where("track_inventory = ? OR stock_quantity > 0", false)
	}
	if f.OnSale {
		query = query.Where("discount_price IS NOT NULL AND discount_price < price")
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		q := "%" + search + "%"
		query = query.Where(
			"name ILIKE ? OR description ILIKE ? OR short_description ILIKE ? OR brand ILIKE ? OR sku ILIKE ?",
			q, q, q, q, q,
		)
	}
	return query
}

func (f ProductFilters) order(query *gorm.DB) *gorm.DB {
	ordering := f.Ordering
	desc := strings.HasPrefix(ordering, "-")
	column, ok := orderingColumns[strings.TrimPrefix(ordering, "-")]
	if !ok {
		return query.Order("created_at desc")
	}
	if desc {
		return query.Order(column + " desc")
	}
	return query.Order(column)
}

// ProductView is the listing representation of a product.
type ProductView struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name"`
	Slug               string             `json:"slug"`
	ShortDescription   string             `json:"short_description"`
	Price              float64            `json:"price"`
	DiscountPrice      *float64           `json:"discount_price"`
	Currency           string             `json:"currency"`
	SKU                string             `json:"sku"`
	Brand              string             `json:"brand"`
	CategoryName       string             `json:"category_name"`
	CategorySlug       string             `json:"category_slug"`
	IsOnSale           bool               `json:"is_on_sale"`
	DiscountPercentage int                `json:"discount_percentage"`
	StockStatus        models.StockStatus `json:"stock_status"`
	AvailabilityStatus string             `json:"availability_status"`
	MainImage          string             `json:"main_image"`
	IsFeatured         bool               `json:"is_featured"`
	CreatedAt          time.Time          `json:"created_at"`
}

// ProductDetail is the full representation with tree context.
type ProductDetail struct {
	ProductView
	Description         string              `json:"description"`
	StockQuantity       int                 `json:"stock_quantity"`
	LowStockThreshold   int                 `json:"low_stock_threshold"`
	TrackInventory      bool                `json:"track_inventory"`
	IsActive            bool                `json:"is_active"`
	MetaTitle           string              `json:"meta_title"`
	MetaDescription     string              `json:"meta_description"`
	CategoryID          uuid.UUID           `json:"category_id"`
	CategoryBreadcrumbs []models.Breadcrumb `json:"category_breadcrumbs"`
	RelatedProducts     []ProductView       `json:"related_products"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

func makeProductView(p *models.Product) ProductView {
	view := ProductView{
		ID:                 p.ID,
		Name:               p.Name,
		Slug:               p.Slug,
		ShortDescription:   p.ShortDescription,
		Price:              p.Price,
		DiscountPrice:      p.DiscountPrice,
		Currency:           p.Currency,
		SKU:                p.SKU,
		Brand:              p.Brand,
		IsOnSale:           p.IsOnSale(),
		DiscountPercentage: p.DiscountPercentage(),
		StockStatus:        p.StockStatus(),
		AvailabilityStatus: p.AvailabilityStatus,
		MainImage:          p.MainImage,
		IsFeatured:         p.IsFeatured,
		CreatedAt:          p.CreatedAt,
	}
	if p.Category != nil {
		view.CategoryName = p.Category.Name
		view.CategorySlug = p.Category.Slug
	}
	return view
}

func makeProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, makeProductView(&products[i]))
	}
	return views
}

// ListProducts returns active products matching the filters, paginated.
func (s *ProductService) ListProducts(filters ProductFilters, pg utils.Pagination) ([]ProductView, int64, error) {
	base := filters.apply(s.db.Model(&models.Product{}).Where("is_active = ?", true))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := filters.order(filters.apply(s.db.Where("is_active = ?", true))).
		Preload("Category").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return makeProductViews(products), total, nil
}

// GetProduct returns one active product with breadcrumbs and related
// products from the same category (up to 4).
func (s *ProductService) GetProduct(id uuid.UUID) (*ProductDetail, error) {
	var product models.Product
	err := s.db.Preload("Category").
		Where("is_active = ?", true).
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	detail := &ProductDetail{
		ProductView:       makeProductView(&product),
		Description:       product.Description,
		StockQuantity:     product.StockQuantity,
		LowStockThreshold: product.LowStockThreshold,
		TrackInventory:    product.TrackInventory,
		IsActive:          product.IsActive,
		MetaTitle:         product.MetaTitle,
		MetaDescription:   product.MetaDescription,
		CategoryID:        product.CategoryID,
		UpdatedAt:         product.UpdatedAt,
	}

	_, idx, err := s.catalog.loadActiveIndex()
	if err != nil {
		return nil, err
	}
	detail.CategoryBreadcrumbs = idx.Breadcrumbs(product.CategoryID)

	var related []models.Product
	err = s.db.Preload("Category").
		Where("category_id = ? AND is_active = ? AND id <> ?", product.CategoryID, true, product.ID).
		Order("created_at desc").
		Limit(4).
		Find(&related).Error
	if err != nil {
		return nil, err
	}
	detail.RelatedProducts = makeProductViews(related)

	return detail, nil
}

// SearchProducts runs a free-text substring search combined with the
// regular filters.
func (s *ProductService) SearchProducts(query string, filters ProductFilters, pg utils.Pagination) ([]ProductView, int64, error) {
	filters.Search = query
	return s.ListProducts(filters, pg)
}

// FeaturedProducts returns up to 20 featured active products.
func (s *ProductService) FeaturedProducts() ([]ProductView, error) {
	var products []models.Product
	err := s.db.Preload("Category").
		Where("is_featured = ? AND is_active = ?", true, true).
		Order("created_at desc").
		Limit(20).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return makeProductViews(products), nil
}

// Recommendations returns up to 4 products: same-category first, padded
// with same-brand products when the category alone yields fewer.
func (s *ProductService) Recommendations(id uuid.UUID) ([]ProductView, error) {
	var product models.Product
	err := s.db.Where("is_active = ?", true).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	const limit = 4

	var picked []models.Product
	err = s.db.Preload("Category").
		Where("category_id = ? AND is_active = ? AND id <> ?", product.CategoryID, true, product.ID).
		Order("created_at desc").
		Limit(limit).
		Find(&picked).Error
	if err != nil {
		return nil, err
	}

	if len(picked) < limit {
		exclude := make([]uuid.UUID, 0, len(picked)+1)
		exclude = append(exclude, product.ID)
		for _, p := range picked {
			exclude = append(exclude, p.ID)
		}
		var padding []models.Product
		err = s.db.Preload("Category").
			Where("brand = ? AND is_active = ? AND id NOT IN ?", product.Brand, true, exclude).
			Order("created_at desc").
			Limit(limit - len(picked)).
			Find(&padding).Error
		if err != nil {
			return nil, err
		}
		picked = append(picked, padding...)
	}

	return makeProductViews(picked), nil
}

// ProductInput carries product create/update fields.
type ProductInput struct {
	Name               string     `json:"name"`
	Slug               string     `json:"slug"`
	Description        string     `json:"description"`
	ShortDescription   string     `json:"short_description"`
	Price              float64    `json:"price"`
	DiscountPrice      *float64   `json:"discount_price"`
	Currency           string     `json:"currency"`
	SKU                string     `json:"sku"`
	Brand              string     `json:"brand"`
	CategoryID         *uuid.UUID `json:"category_id"`
	StockQuantity      int        `json:"stock_quantity"`
	LowStockThreshold  int        `json:"low_stock_threshold"`
	TrackInventory     bool       `json:"track_inventory"`
	IsActive           *bool      `json:"is_active"`
	IsFeatured         *bool      `json:"is_featured"`
	AvailabilityStatus string     `json:"availability_status"`
	MainImage          string     `json:"main_image"`
	MetaTitle          string     `json:"meta_title"`
	MetaDescription    string     `json:"meta_description"`
}

// ValidateProductInput checks the field rules that need no storage
// access: name length, positive price, discount strictly below price,
// non-negative stock fields, a known availability status.
func ValidateProductInput(in *ProductInput) ValidationErrors {
	errs := ValidationErrors{}

	in.Name = strings.TrimSpace(in.Name)
	if len(in.Name) < 2 {
		errs.Add("name", "Product name must be at least 2 characters long.")
	}
	if in.Price <= 0 {
		errs.Add("price", "Price must be greater than 0.")
	}
	if in.DiscountPrice != nil {
		if *in.DiscountPrice <= 0 {
			errs.Add("discount_price", "Discount price must be greater than 0.")
		} else if *in.DiscountPrice >= in.Price {
			errs.Add("discount_price", "Discount price must be less than the regular price.")
		}
	}
	if strings.TrimSpace(in.SKU) == "" {
		errs.Add("sku", "SKU is required.")
	}
	if in.StockQuantity < 0 {
		errs.Add("stock_quantity", "Stock quantity cannot be negative.")
	}
	if in.LowStockThreshold < 0 {
		errs.Add("low_stock_threshold", "Low stock threshold cannot be negative.")
	}
	if in.AvailabilityStatus != "" && !models.ValidAvailabilityStatus(in.AvailabilityStatus) {
		errs.Add("availability_status", "Invalid availability status.")
	}
	if in.CategoryID == nil {
		errs.Add("category_id", "Category is required.")
	}
	if in.Slug == "" && in.Name != "" {
		in.Slug = utils.Slugify(in.Name)
	}

	return errs
}

func (s *ProductService) validateUniqueness(in *ProductInput, excludeID uuid.UUID, errs ValidationErrors) error {
	var count int64
	if err := s.db.Model(&models.Product{}).
		Where("sku = ? AND id <> ?", in.SKU, excludeID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		errs.Add("sku", "A product with this SKU already exists.")
	}
	if err := s.db.Model(&models.Product{}).
		Where("slug = ? AND id <> ?", in.Slug, excludeID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		errs.Add("slug", "A product with this slug already exists.")
	}

	if in.CategoryID != nil {
		if err := s.db.Model(&models.Category{}).
			Where("id = ? AND is_active = ?", *in.CategoryID, true).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			errs.Add("category_id", "Category not found.")
		}
	}
	return nil
}

func applyProductInput(p *models.Product, in ProductInput) {
	p.Name = in.Name
	p.Slug = in.Slug
	p.Description = in.Description
	p.ShortDescription = in.ShortDescription
	p.Price = in.Price
	p.DiscountPrice = in.DiscountPrice
	p.SKU = strings.TrimSpace(in.SKU)
	p.Brand = in.Brand
	p.StockQuantity = in.StockQuantity
	p.LowStockThreshold = in.LowStockThreshold
	p.TrackInventory = in.TrackInventory
	p.MainImage = in.MainImage
	p.MetaTitle = in.MetaTitle
	p.MetaDescription = in.MetaDescription
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.Currency != "" {
		p.Currency = in.Currency
	}
	if in.AvailabilityStatus != "" {
		p.AvailabilityStatus = in.AvailabilityStatus
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
}

// CreateProduct validates and persists a new product.
func (s *ProductService) CreateProduct(in ProductInput) (*models.Product, error) {
	errs := ValidateProductInput(&in)
	if err := s.validateUniqueness(&in, uuid.Nil, errs); err != nil {
		return nil, err
	}
	if errs.Has() {
		return nil, errs
	}

	product := models.Product{
		Currency:           "GHS",
		IsActive:           true,
		IsFeatured:         true,
		AvailabilityStatus: models.StatusOutOfStock,
	}
	applyProductInput(&product, in)

	if err := s.db.Create(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, FieldError(NonFieldErrors, "A product with this SKU or slug already exists.")
		}
		return nil, err
	}
	return &product, nil
}

// UpdateProduct validates and applies changes to an existing product.
func (s *ProductService) UpdateProduct(id uuid.UUID, in ProductInput) (*models.Product, error) {
	var product models.Product
	err := s.db.Where("is_active = ?", true).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	errs := ValidateProductInput(&in)
	if err := s.validateUniqueness(&in, id, errs); err != nil {
		return nil, err
	}
	if errs.Has() {
		return nil, errs
	}

	applyProductInput(&product, in)
	if err := s.db.Save(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, FieldError(NonFieldErrors, "A product with this SKU or slug already exists.")
		}
		return nil, err
	}
	return &product, nil
}

// DeleteProduct soft-deletes a product by clearing is_active.
func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	result := s.db.Model(&models.Product{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
