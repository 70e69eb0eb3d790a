package gcs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveImageURL_PublicMode(t *testing.T) {
	r := NewProductImageURLResolver(nil, "gurlhub-products", false, 0)
	ctx := context.Background()

	assert.Equal(t, "https://images.unsplash.com/photo-1?w=600",
		r.ResolveImageURL(ctx, "https://images.unsplash.com/photo-1?w=600"))
	assert.Equal(t, "https://storage.googleapis.com/gurlhub-products/chokers/gold.jpg",
		r.ResolveImageURL(ctx, "chokers/gold.jpg"))
	assert.Equal(t, "https://storage.googleapis.com/other/x.png",
		r.ResolveImageURL(ctx, "gs://other/x.png"))
	assert.Equal(t, "", r.ResolveImageURL(ctx, "  "))
}

func TestResolveImageURL_NoBucketLeavesPaths(t *testing.T) {
	r := NewProductImageURLResolver(nil, "", false, 0)
	assert.Equal(t, "chokers/gold.jpg", r.ResolveImageURL(context.Background(), "chokers/gold.jpg"))
}

func TestResolveImageURL_SignedMode(t *testing.T) {
	fixed := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	var gotExpiry time.Time

	r := &ProductImageURLResolver{
		DefaultBucket: "gurlhub-products",
		TTL:           10 * time.Minute,
		now:           func() time.Time { return fixed },
		Sign: func(b, obj string, expires time.Time) (string, error) {
			gotExpiry = expires
			return "https://signed.example/" + b + "/" + obj, nil
		},
	}

	assert.Equal(t, "https://signed.example/gurlhub-products/a.jpg", r.ResolveImageURL(context.Background(), "a.jpg"))
	assert.Equal(t, fixed.Add(10*time.Minute), gotExpiry)

	r.Sign = func(string, string, time.Time) (string, error) { return "", errors.New("no signer") }
	assert.Equal(t, "https://storage.googleapis.com/gurlhub-products/a.jpg", r.ResolveImageURL(context.Background(), "a.jpg"))
}
