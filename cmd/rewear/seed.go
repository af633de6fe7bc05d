package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/rewear-hq/rewear/internal/store"
)

// demoItem describes one listing in the demo catalog. The uploader field
// refers to a demo user by name.
type demoItem struct {
	title       string
	description string
	category    string
	size        string
	condition   string
	image       string
	brand       string
	price       float64
	uploader    string
}

var demoUsers = []string{
	"Sarah Johnson",
	"Emma Wilson",
	"Mike Davis",
	"Lisa Chen",
	"David Brown",
	"Jessica Taylor",
}

var demoItems = []demoItem{
	{
		title:       "Vintage Denim Jacket",
		description: "Classic blue denim jacket from the 90s. Perfect condition with minimal wear. Great for layering and adding a retro touch to any outfit.",
		category:    "jackets",
		size:        "M",
		condition:   "excellent",
		image:       "https://images.pexels.com/photos/1040945/pexels-photo-1040945.jpeg",
		brand:       "Levi's",
		price:       120,
		uploader:    "Sarah Johnson",
	},
	{
		title:       "Elegant Evening Dress",
		description: "Beautiful black evening dress perfect for formal occasions. Features a flattering silhouette and high-quality fabric.",
		category:    "dresses",
		size:        "S",
		condition:   "like-new",
		image:       "https://images.pexels.com/photos/985635/pexels-photo-985635.jpeg",
		brand:       "Zara",
		price:       89,
		uploader:    "Emma Wilson",
	},
	{
		title:       "Casual Summer Top",
		description: "Light and breezy summer top in a lovely floral pattern. Perfect for warm weather and casual outings.",
		category:    "shirts",
		size:        "L",
		condition:   "good",
		image:       "https://images.pexels.com/photos/996329/pexels-photo-996329.jpeg",
		brand:       "H&M",
		price:       25,
		uploader:    "Mike Davis",
	},
	{
		title:       "Designer Handbag",
		description: "Authentic designer handbag in excellent condition. Classic design that never goes out of style.",
		category:    "accessories",
		size:        "M",
		condition:   "excellent",
		image:       "https://images.pexels.com/photos/904350/pexels-photo-904350.jpeg",
		brand:       "Michael Kors",
		price:       250,
		uploader:    "Lisa Chen",
	},
	{
		title:       "Wool Winter Coat",
		description: "Warm and stylish wool coat perfect for cold weather. High-quality material and classic cut.",
		category:    "jackets",
		size:        "L",
		condition:   "good",
		image:       "https://images.pexels.com/photos/1055691/pexels-photo-1055691.jpeg",
		brand:       "Uniqlo",
		price:       150,
		uploader:    "David Brown",
	},
	{
		title:       "Stylish Sneakers",
		description: "Comfortable and trendy sneakers in great condition. Perfect for everyday wear and casual activities.",
		category:    "shoes",
		size:        "9",
		condition:   "good",
		image:       "https://images.pexels.com/photos/2529148/pexels-photo-2529148.jpeg",
		brand:       "Nike",
		price:       80,
		uploader:    "Jessica Taylor",
	},
	{
		title:       "Classic White Shirt",
		description: "Crisp white button-down shirt. A wardrobe essential that pairs with everything.",
		category:    "shirts",
		size:        "S",
		condition:   "like-new",
		image:       "https://images.pexels.com/photos/1183266/pexels-photo-1183266.jpeg",
		brand:       "Uniqlo",
		price:       35,
		uploader:    "Emma Wilson",
	},
	{
		title:       "Leather Ankle Boots",
		description: "Genuine leather ankle boots with a modern design. Comfortable and versatile.",
		category:    "shoes",
		size:        "8",
		condition:   "good",
		image:       "https://images.pexels.com/photos/1598505/pexels-photo-1598505.jpeg",
		brand:       "Dr. Martens",
		price:       140,
		uploader:    "Sarah Johnson",
	},
}

// seedDemo populates an empty database with demo users and listings. It is
// a no-op when any items already exist, so restarting with -demo is safe.
func seedDemo(ctx context.Context, database *sql.DB) error {
	items, err := store.ListItems(ctx, database, store.ItemFilter{})
	if err != nil {
		return err
	}
	if len(items) > 0 {
		slog.Info("demo seed skipped, database not empty", "items", len(items))
		return nil
	}

	// Every demo account gets the same throwaway password.
	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	userIDs := make(map[string]string, len(demoUsers))
	for _, name := range demoUsers {
		email := demoEmail(name)
		user, err := store.CreateUser(ctx, database, name, email, string(hash))
		if err != nil {
			return fmt.Errorf("creating demo user %s: %w", name, err)
		}
		userIDs[name] = user.ID
	}

	for _, d := range demoItems {
		_, err := store.CreateItem(ctx, database, store.CreateItemParams{
			Title:         d.title,
			Description:   d.description,
			Category:      d.category,
			Size:          d.size,
			Condition:     d.condition,
			Image:         d.image,
			Brand:         d.brand,
			OriginalPrice: d.price,
			UploaderID:    userIDs[d.uploader],
			UploaderName:  d.uploader,
		})
		if err != nil {
			return fmt.Errorf("creating demo item %q: %w", d.title, err)
		}
	}

	slog.Info("demo catalog seeded", "users", len(demoUsers), "items", len(demoItems),
		"password", "demo1234")
	return nil
}

// demoEmail derives a demo address from a display name, e.g.
// "Sarah Johnson" becomes "sarah.johnson@example.com".
func demoEmail(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
}
