package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "mobile-phones-tablets", Slugify("Mobile Phones & Tablets"))
	assert.Equal(t, "iphone-15-pro-max", Slugify("iPhone 15 Pro Max"))
	assert.Equal(t, "electronics", Slugify("  Electronics  "))
	assert.Equal(t, "a-b", Slugify("a---b"))
	assert.Equal(t, "", Slugify("!!!"))
}
