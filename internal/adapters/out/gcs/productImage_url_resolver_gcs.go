// backend/internal/adapters/out/gcs/productImage_url_resolver_gcs.go
package gcs

import (
	"context"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	gcscommon "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/gcs/common"
)

// SignFunc issues a V4 signed GET URL for bucket/object.
type SignFunc func(bucket, object string, expires time.Time) (string, error)

// ProductImageURLResolver turns stored product image references into
// browser-loadable URLs.
//   - external http(s) URLs pass through untouched
//   - gs:// refs, GCS URLs and bare object paths (under DefaultBucket) become
//     public URLs, or signed URLs when Sign is set
type ProductImageURLResolver struct {
	DefaultBucket string
	TTL           time.Duration
	Sign          SignFunc
	now           func() time.Time
}

// NewProductImageURLResolver builds a resolver. When signed is true and
// client is non-nil, URLs are signed for ttl.
func NewProductImageURLResolver(client *storage.Client, bucket string, signed bool, ttl time.Duration) *ProductImageURLResolver {
	r := &ProductImageURLResolver{
		DefaultBucket: strings.TrimSpace(bucket),
		TTL:           ttl,
		now:           time.Now,
	}
	if ttl <= 0 {
		r.TTL = 15 * time.Minute
	}
	if signed && client != nil {
		r.Sign = func(b, obj string, expires time.Time) (string, error) {
			return client.Bucket(b).SignedURL(obj, &storage.SignedURLOptions{
				Scheme:  storage.SigningSchemeV4,
				Method:  "GET",
				Expires: expires,
			})
		}
	}
	return r
}

// ResolveImageURL returns a URL for ref. Unresolvable refs come back unchanged.
func (r *ProductImageURLResolver) ResolveImageURL(_ context.Context, ref string) string {
	ref = strings.TrimSpace(ref)
	if r == nil || ref == "" {
		return ref
	}

	bucket, object, ok := gcscommon.ParseGCSURL(ref)
	if !ok {
		if r.DefaultBucket == "" || !gcscommon.IsObjectPath(ref) {
			return ref
		}
		bucket, object = r.DefaultBucket, strings.TrimLeft(ref, "/")
	}

	if r.Sign != nil {
		now := time.Now
		if r.now != nil {
			now = r.now
		}
		u, err := r.Sign(bucket, object, now().Add(r.TTL))
		if err == nil {
			return u
		}
		log.Printf("[gcs.productImage] WARN: sign %s/%s failed: %v (falling back to public url)", bucket, object, err)
	}
	return gcscommon.GCSPublicURL(bucket, object, r.DefaultBucket)
}
