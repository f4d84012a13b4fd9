package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceP(v float64) *float64 { return &v }

func TestIsOnSale(t *testing.T) {
	p := Product{Price: 100}
	assert.False(t, p.IsOnSale(), "no discount price")

	p.DiscountPrice = priceP(80)
	assert.True(t, p.IsOnSale())

	p.DiscountPrice = priceP(100)
	assert.False(t, p.IsOnSale(), "discount equal to price is not a sale")

	p.DiscountPrice = priceP(120)
	assert.False(t, p.IsOnSale(), "discount above price is not a sale")
}

func TestDiscountPercentage(t *testing.T) {
	p := Product{Price: 200, DiscountPrice: priceP(150)}
	assert.Equal(t, 25, p.DiscountPercentage())

	p.DiscountPrice = nil
	assert.Equal(t, 0, p.DiscountPercentage())

	p = Product{Price: 3, DiscountPrice: priceP(2)}
	assert.Equal(t, 33, p.DiscountPercentage())
}

func TestStockStatus(t *testing.T) {
	p := Product{TrackInventory: false, StockQuantity: 0}
	assert.Equal(t, "unlimited", p.StockStatus().Status)
	assert.Nil(t, p.StockStatus().Quantity)

	p = Product{TrackInventory: true, StockQuantity: 0, LowStockThreshold: 5}
	st := p.StockStatus()
	assert.Equal(t, "out_of_stock", st.Status)
	require.NotNil(t, st.Quantity)
	assert.Equal(t, 0, *st.Quantity)

	p.StockQuantity = 3
	st = p.StockStatus()
	assert.Equal(t, "low_stock", st.Status)
	assert.Equal(t, "Only 3 left in stock", st.Message)

	p.StockQuantity = 50
	st = p.StockStatus()
	assert.Equal(t, "in_stock", st.Status)
	assert.Equal(t, "50 items available", st.Message)
}

func TestValidAvailabilityStatus(t *testing.T) {
	for _, v := range []string{StatusInStock, StatusOutOfStock, StatusPreOrder, StatusDiscontinued} {
		assert.True(t, ValidAvailabilityStatus(v), v)
	}
	assert.False(t, ValidAvailabilityStatus("backordered"))
	assert.False(t, ValidAvailabilityStatus(""))
}
