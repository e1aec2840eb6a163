// Package main provides a tool to seed the database with demo cellar data.
//
// This creates demo users and fills their cellars with wines from the
// embedded catalog, so pairing and reconciliation features can be exercised
// against a realistic dataset.
//
// Usage:
//
//	DB_PATH=~/.cellar-server/db go run ./cmd/seed
//	DB_PATH=~/.cellar-server/db go run ./cmd/seed --catalog=/path/to/catalog.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/luberoncellar/cellar-server/internal/auth"
	"github.com/luberoncellar/cellar-server/internal/catalog"
	"github.com/luberoncellar/cellar-server/internal/domain"
	"github.com/luberoncellar/cellar-server/internal/id"
	"github.com/luberoncellar/cellar-server/internal/store"
)

var catalogPath = flag.String("catalog", "", "Optional catalog override file (defaults to the embedded catalog)")

// demoUsers are the accounts the tool creates. All of them get the same
// password, kjellerdemo123, so the accounts are easy to log into.
var demoUsers = []struct {
	email string
	name  string
}{
	{"alex@example.com", "Alex Rivera"},
	{"jordan@example.com", "Jordan Chen"},
	{"sam@example.com", "Sam Taylor"},
	{"casey@example.com", "Casey Morgan"},
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, ".cellar-server", "db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	var c *catalog.Catalog
	if *catalogPath != "" {
		c, err = catalog.LoadFile(*catalogPath)
	} else {
		c, err = catalog.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	wines := c.Wines()
	if len(wines) == 0 {
		log.Fatal("Catalog has no wines, nothing to seed")
	}
	fmt.Printf("Catalog has %d wines\n", len(wines))

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	passwordHash, err := auth.HashPassword("kjellerdemo123")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()

	for _, du := range demoUsers {
		// Skip accounts that already exist so the tool can be rerun safely.
		if existing, _ := s.Users.GetByIndex(ctx, "email", du.email); existing != nil {
			fmt.Printf("  User %s already exists, skipping\n", du.email)
			continue
		}

		user := &domain.User{
			ID:           id.MustGenerate("user"),
			Email:        du.email,
			PasswordHash: passwordHash,
			DisplayName:  du.name,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := s.Users.Create(ctx, user.ID, user); err != nil {
			log.Printf("  Failed to create user %s: %v", du.email, err)
			continue
		}

		fmt.Printf("  Created user: %s (%s)\n", du.name, du.email)

		// Pick 3-6 random wines for this user's cellar
		numWines := min(3+rng.Intn(4), len(wines))

		shuffled := make([]domain.WineRecord, len(wines))
		copy(shuffled, wines)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		cellar := &domain.Cellar{UserID: user.ID}
		for _, wine := range shuffled[:numWines] {
			entry := domain.CellarEntry{
				WineID:       wine.ID,
				Year:         2018 + rng.Intn(7),
				Quantity:     1 + rng.Intn(6),
				PurchaseDate: now.AddDate(0, -rng.Intn(18), 0).Format("2006-01-02"),
			}

			// Roughly half the entries get a rating and a tasted date
			if rng.Intn(2) == 0 {
				rating := 3 + rng.Intn(3)
				entry.Rating = &rating
				entry.TastedDate = now.AddDate(0, 0, -rng.Intn(90)).Format("2006-01-02")
			}

			cellar.Entries = append(cellar.Entries, entry)
		}

		if err := s.SaveCellar(ctx, cellar); err != nil {
			log.Printf("  Failed to save cellar for %s: %v", du.email, err)
			continue
		}

		fmt.Printf("    Stocked cellar with %d wines\n", numWines)
	}

	fmt.Println("\nSeeding complete!")
}
