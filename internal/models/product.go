package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Availability status values stored on Product.
const (
	StatusInStock      = "in_stock"
	StatusOutOfStock   = "out_of_stock"
	StatusPreOrder     = "pre_order"
	StatusDiscontinued = "discontinued"
)

// ValidAvailabilityStatus reports whether value is one of the stored enum
// values.
func ValidAvailabilityStatus(value string) bool {
	switch value {
	case StatusInStock, StatusOutOfStock, StatusPreOrder, StatusDiscontinued:
		return true
	}
	return false
}

// Product belongs to exactly one category. The category reference is
// protected: a category cannot be hard-deleted while products point at it.
type Product struct {
	BaseModel
	Name             string    `gorm:"size:50" json:"name"`
	Slug             string    `gorm:"uniqueIndex" json:"slug"`
	Description      string    `json:"description"`
	ShortDescription string    `gorm:"size:150" json:"short_description"`
	Price            float64   `json:"price"`
	DiscountPrice    *float64  `json:"discount_price"`
	Currency         string    `gorm:"size:20;default:GHS" json:"currency"`
	SKU              string    `gorm:"uniqueIndex;size:50" json:"sku"`
	Brand            string    `gorm:"size:50;index" json:"brand"`
	CategoryID       uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category         *Category `gorm:"constraint:OnDelete:RESTRICT" json:"category,omitempty"`

	StockQuantity     int  `json:"stock_quantity"`
	LowStockThreshold int  `json:"low_stock_threshold"`
	TrackInventory    bool `gorm:"default:false" json:"track_inventory"`

	IsActive           bool   `gorm:"default:true" json:"is_active"`
	IsFeatured         bool   `gorm:"default:true" json:"is_featured"`
	AvailabilityStatus string `gorm:"size:20;default:out_of_stock" json:"availability_status"`

	MainImage       string `json:"main_image"`
	MetaTitle       string `gorm:"size:50" json:"meta_title"`
	MetaDescription string `gorm:"size:150" json:"meta_description"`
}

// IsOnSale reports whether a discount price is set and strictly below the
// regular price.
func (p *Product) IsOnSale() bool {
	return p.DiscountPrice != nil && *p.DiscountPrice < p.Price
}

// DiscountPercentage returns the rounded discount, 0 when not on sale.
func (p *Product) DiscountPercentage() int {
	if !p.IsOnSale() || p.Price <= 0 {
		return 0
	}
	return int((p.Price-*p.DiscountPrice)/p.Price*100 + 0.5)
}

// StockStatus summarizes inventory for listings.
type StockStatus struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Quantity *int   `json:"quantity"`
}

// StockStatus derives the inventory view: untracked products are always
// available, tracked ones report out_of_stock, low_stock or in_stock.
func (p *Product) StockStatus() StockStatus {
	if !p.TrackInventory {
		return StockStatus{Status: "unlimited", Message: "Always available"}
	}
	qty := p.StockQuantity
	switch {
	case qty <= 0:
		zero := 0
		return StockStatus{Status: "out_of_stock", Message: "Currently out of stock", Quantity: &zero}
	case qty <= p.LowStockThreshold:
		return StockStatus{Status: "low_stock", Message: fmt.Sprintf("Only %d left in stock", qty), Quantity: &qty}
	default:
		return StockStatus{Status: "in_stock", Message: fmt.Sprintf("%d items available", qty), Quantity: &qty}
	}
}
