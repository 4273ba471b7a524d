package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPublicID(t *testing.T) {
	cases := map[string]string{
		"https://res.cloudinary.com/demo/image/upload/v1712/products/171-ab12-shoe.webp": "products/171-ab12-shoe",
		"https://res.cloudinary.com/demo/image/upload/products/shoe.webp":                "products/shoe",
		"https://res.cloudinary.com/demo/image/upload/vintage/shoe.webp":                 "vintage/shoe",
		"https://example.com/no-upload-segment.png":                                      "",
		"::not a url":                                                                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, extractPublicID(in), in)
	}
}

func TestObjectKey(t *testing.T) {
	k := objectKey("My Shoe (1).PNG")
	assert.Regexp(t, `^\d+-[0-9a-f]{8}-My-Shoe--1-$`, k)
	assert.Regexp(t, `-image$`, objectKey(".png"))
}
