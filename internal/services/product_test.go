package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductInput() ProductInput {
	categoryID := uuid.New()
	return ProductInput{
		Name:       "iPhone 15 Pro Max",
		Price:      9999.99,
		SKU:        "IP15PM-256",
		Brand:      "Apple",
		CategoryID: &categoryID,
	}
}

func TestValidateProductInputAccepts(t *testing.T) {
	in := validProductInput()
	errs := ValidateProductInput(&in)
	assert.False(t, errs.Has(), "unexpected errors: %v", errs)
	assert.Equal(t, "iphone-15-pro-max", in.Slug, "slug is generated from the name")
}

func TestValidateProductInputDiscountRules(t *testing.T) {
	discount := 120.0
	in := validProductInput()
	in.Price = 100
	in.DiscountPrice = &discount
	errs := ValidateProductInput(&in)
	require.True(t, errs.Has())
	assert.Contains(t, errs["discount_price"][0], "less than the regular price")

	discount = 100
	in = validProductInput()
	in.Price = 100
	in.DiscountPrice = &discount
	errs = ValidateProductInput(&in)
	require.True(t, errs.Has(), "discount equal to price must be rejected")

	discount = 80
	in = validProductInput()
	in.Price = 100
	in.DiscountPrice = &discount
	errs = ValidateProductInput(&in)
	assert.False(t, errs.Has())
}

func TestValidateProductInputFieldRules(t *testing.T) {
	in := validProductInput()
	in.Name = "x"
	in.Price = 0
	in.SKU = "  "
	in.StockQuantity = -1
	in.LowStockThreshold = -1
	in.AvailabilityStatus = "maybe"
	in.CategoryID = nil

	errs := ValidateProductInput(&in)
	require.True(t, errs.Has())
	for _, field := range []string{"name", "price", "sku", "stock_quantity", "low_stock_threshold", "availability_status", "category_id"} {
		assert.NotEmpty(t, errs[field], "expected error for %s", field)
	}
}

func TestSplitFullName(t *testing.T) {
	first, last := SplitFullName("Jane Doe")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	first, last = SplitFullName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Equal(t, "", last)

	first, last = SplitFullName("  Ada Lovelace King ")
	assert.Equal(t, "Ada", first)
	assert.Equal(t, "Lovelace King", last)
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{}
	assert.False(t, errs.Has())

	errs.Add("email", "Email address is required.")
	errs.Add("email", "Please enter a valid email address.")
	require.True(t, errs.Has())
	assert.Len(t, errs["email"], 2)
	assert.Contains(t, errs.Error(), "email")

	single := FieldError("password", "Incorrect password.")
	assert.Equal(t, []string{"Incorrect password."}, single["password"])
}
