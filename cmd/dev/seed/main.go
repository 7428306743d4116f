package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"eternavista/internal/catalog"
	"eternavista/pkg/config"
	"eternavista/pkg/db"
)

// Seeds the Dublin destination and its venues for local development. A
// non-empty catalog is left untouched.
func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open failed: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := catalog.NewRepository(pool)

	existing, err := repo.ListDestinations(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list destinations failed: %v\n", err)
		os.Exit(1)
	}
	if len(existing) > 0 {
		fmt.Println("data already exists")
		return
	}

	fmt.Println("seeding Dublin data...")

	dublin, err := repo.CreateDestination(ctx, catalog.DestinationInput{
		Name:        "Dublin, Ireland",
		Description: "Historic streets, lively pubs, and ancient castles.",
		ImageURL:    "https://images.unsplash.com/photo-1549918864-48ac978761a4?auto=format&fit=crop&w=800&q=80",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create destination failed: %v\n", err)
		os.Exit(1)
	}

	venues := []struct {
		name     string
		capacity int
		price    string
	}{
		{"Dublin Castle", 150, "2500"},
		{"Trinity College Library", 50, "1200"},
		{"Guinness Storehouse (Gravity Bar)", 200, "3000"},
		{"St. Patrick's Cathedral", 300, "1800"},
	}
	for _, v := range venues {
		price, err := decimal.NewFromString(v.price)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad price %q: %v\n", v.price, err)
			os.Exit(1)
		}
		if _, err := repo.CreateVenue(ctx, catalog.VenueInput{
			DestinationID: dublin.ID,
			Name:          v.name,
			Capacity:      v.capacity,
			Price:         price,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "create venue %q failed: %v\n", v.name, err)
			os.Exit(1)
		}
	}

	fmt.Printf("seeded %s with %d venues\n", dublin.Name, len(venues))
}
