// backend/internal/application/usecase/catalog_seed.go
package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	productdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/product"
)

type seedProduct struct {
	name, category string
	price          int64
	image          string
	description    string
	tags           []string
	stock          int
}

func unsplash(id string) string {
	return "https://images.unsplash.com/" + id + "?q=80&w=600&auto=format&fit=crop"
}

var seedCatalog = []seedProduct{
	{"The 'Debbs' Gold Choker", "Jewelry", 150, unsplash("photo-1611591437281-460bfbe1220a"),
		"18k gold vermeil, water-resistant, and perfect for layering. A campus essential.",
		[]string{"gold", "necklace", "jewelry"}, 50},
	{"Vanilla Oud Essence", "Fragrance", 200, unsplash("photo-1592945403244-b3fbafd7f539"),
		"A warm, spicy scent that lasts all day. Notes of vanilla, oud, and amber.",
		[]string{"perfume", "fragrance", "luxury"}, 30},
	{"The Uni Tote", "Accessories", 90, unsplash("photo-1544816155-12df9643f363"),
		"Canvas tote with reinforced straps. Fits a 15-inch laptop comfortably.",
		[]string{"bag", "tote", "university"}, 75},
	{"Aesthetic Tumbler", "Lifestyle", 85, unsplash("photo-1620916566398-39f1143ab7be"),
		"Borosilicate glass with bamboo lid. Keeps your iced coffee cold for 6 hours.",
		[]string{"tumbler", "lifestyle", "aesthetic"}, 100},
	{"Pearl Drop Earrings", "Jewelry", 55, unsplash("photo-1535632066927-ab7c9ab60908"),
		"Freshwater pearls on gold-plated hoops. Elegant yet understated.",
		[]string{"pearl", "earrings", "jewelry"}, 60},
	{"Digital Vision Planner", "Digital", 40, unsplash("photo-1506784983877-45594efa4cbe"),
		"iPad compatible PDF planner with hyperlinks. Get your life organized.",
		[]string{"planner", "digital", "productivity"}, 999},
	{"Rose Gold Bracelet Set", "Jewelry", 75, unsplash("photo-1611591437281-460bfbe1220a"),
		"Three delicate bracelets in rose gold. Stack them or wear individually.",
		[]string{"rose gold", "bracelet", "jewelry"}, 45},
	{"Laptop Sleeve - Velvet", "Accessories", 65, unsplash("photo-1544816155-12df9643f363"),
		"Luxurious velvet sleeve for 13-15 inch laptops. Padded protection with style.",
		[]string{"laptop", "sleeve", "velvet"}, 55},
	{"Crystal Hoop Earrings", "Jewelry", 95, unsplash("photo-1535632066927-ab7c9ab60908"),
		"Gold hoops with crystal embellishments. Perfect for special occasions.",
		[]string{"crystal", "hoops", "jewelry"}, 40},
	{"Mint Fresh Perfume", "Fragrance", 180, unsplash("photo-1592945403244-b3fbafd7f539"),
		"Fresh and invigorating scent with notes of mint, citrus, and white tea.",
		[]string{"perfume", "fresh", "fragrance"}, 35},
	{"Study Essentials Bundle", "Digital", 55, unsplash("photo-1506784983877-45594efa4cbe"),
		"Complete digital study kit with planner, note templates, and wallpapers.",
		[]string{"bundle", "digital", "study"}, 999},
	{"Metallic Water Bottle", "Lifestyle", 50, unsplash("photo-1620916566398-39f1143ab7be"),
		"Stainless steel insulated bottle. Keeps drinks hot or cold for 24 hours.",
		[]string{"bottle", "lifestyle", "hydration"}, 80},
}

// SeedCatalogIfEmpty inserts the launch catalog when no product exists yet.
// It returns the number of products inserted.
func SeedCatalogIfEmpty(ctx context.Context, repo productdom.Repository, now time.Time) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	for i, s := range seedCatalog {
		p, err := productdom.New(s.name, s.category, decimal.NewFromInt(s.price), s.image, s.description, s.tags, s.stock, now)
		if err != nil {
			return i, fmt.Errorf("seed product %q: %w", s.name, err)
		}
		if _, err := repo.Create(ctx, p); err != nil {
			return i, fmt.Errorf("insert product %q: %w", s.name, err)
		}
	}
	log.Printf("[seed] inserted %d products", len(seedCatalog))
	return len(seedCatalog), nil
}
