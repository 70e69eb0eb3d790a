package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGCSURL(t *testing.T) {
	cases := []struct {
		in     string
		bucket string
		object string
		ok     bool
	}{
		{"gs://shop-img/products/choker.jpg", "shop-img", "products/choker.jpg", true},
		{"https://storage.googleapis.com/shop-img/products/a%20b.jpg", "shop-img", "products/a b.jpg", true},
		{"https://storage.cloud.google.com/shop-img/x.png", "shop-img", "x.png", true},
		{"https://images.unsplash.com/photo-1?q=80", "", "", false},
		{"gs://shop-img", "", "", false},
		{"https://storage.googleapis.com/only-bucket", "", "", false},
	}
	for _, tc := range cases {
		b, o, ok := ParseGCSURL(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.bucket, b, tc.in)
		assert.Equal(t, tc.object, o, tc.in)
	}
}

func TestGCSPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/b/p/x.jpg", GCSPublicURL("", "/p/x.jpg", "b"))
	assert.Equal(t, "https://storage.googleapis.com/other/a%20b.jpg", GCSPublicURL("other", "a b.jpg", "b"))
}

func TestIsObjectPath(t *testing.T) {
	assert.True(t, IsObjectPath("products/choker.jpg"))
	assert.False(t, IsObjectPath("https://images.unsplash.com/x"))
	assert.False(t, IsObjectPath("gs://b/x"))
	assert.False(t, IsObjectPath(""))
	assert.False(t, IsObjectPath("//cdn.example.com/x"))
}
