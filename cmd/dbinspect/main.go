package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/luberoncellar/cellar-server/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, ".cellar-server", "db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	userCount := 0
	sessionCount := 0
	cellarCount := 0
	totalEntries := 0
	totalBottles := 0
	cellarsShown := 0

	// Display names by user ID, so cellars can be labelled
	names := make(map[string]string)

	err = db.View(func(txn *badger.Txn) error {
		itOpts := badger.DefaultIteratorOptions
		itOpts.Prefix = []byte("user:")
		it := txn.NewIterator(itOpts)

		for it.Seek([]byte("user:")); it.ValidForPrefix([]byte("user:")); it.Next() {
			item := it.Item()
			key := string(item.Key())

			// Skip index keys
			if strings.HasPrefix(key, "user:idx:") {
				continue
			}

			err := item.Value(func(val []byte) error {
				var user domain.User
				if err := json.Unmarshal(val, &user); err != nil {
					return err
				}
				userCount++
				names[user.ID] = user.DisplayName
				fmt.Printf("User: %s\n", user.DisplayName)
				fmt.Printf("  ID: %s\n", user.ID)
				fmt.Printf("  Email: %s\n", user.Email)
				if !user.LastLoginAt.IsZero() {
					fmt.Printf("  Last login: %s\n", user.LastLoginAt.Format("2006-01-02 15:04"))
				}
				fmt.Println()
				return nil
			})
			if err != nil {
				log.Printf("Error reading user %s: %v", key, err)
			}
		}
		it.Close()

		itOpts = badger.DefaultIteratorOptions
		itOpts.Prefix = []byte("session:")
		it = txn.NewIterator(itOpts)

		for it.Seek([]byte("session:")); it.ValidForPrefix([]byte("session:")); it.Next() {
			key := string(it.Item().Key())
			if strings.HasPrefix(key, "session:idx:") {
				continue
			}
			sessionCount++
		}
		it.Close()

		itOpts = badger.DefaultIteratorOptions
		itOpts.Prefix = []byte("cellar:")
		it = txn.NewIterator(itOpts)
		defer it.Close()

		for it.Seek([]byte("cellar:")); it.ValidForPrefix([]byte("cellar:")); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(val []byte) error {
				var cellar domain.Cellar
				if err := json.Unmarshal(val, &cellar); err != nil {
					return err
				}

				cellarCount++
				totalEntries += len(cellar.Entries)
				bottles := cellar.TotalBottles()
				totalBottles += bottles

				// Show the first few cellars in detail
				if cellarsShown < 3 {
					cellarsShown++
					owner := names[cellar.UserID]
					if owner == "" {
						owner = cellar.UserID
					}
					fmt.Printf("Cellar: %s\n", owner)
					fmt.Printf("  Rows: %d\n", len(cellar.Entries))
					fmt.Printf("  Bottles: %d\n", bottles)
					for i, entry := range cellar.Entries {
						if i >= 5 {
							fmt.Printf("    ... and %d more rows\n", len(cellar.Entries)-5)
							break
						}
						fmt.Printf("    %s (%d) x%d\n", entry.WineID, entry.Year, entry.Quantity)
					}
					fmt.Println()
				}

				return nil
			})
			if err != nil {
				log.Printf("Error reading cellar %s: %v", key, err)
			}
		}
		return nil
	})

	if err != nil {
		log.Fatalf("Error iterating database: %v", err)
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Total users: %d\n", userCount)
	fmt.Printf("Total sessions: %d\n", sessionCount)
	fmt.Printf("Total cellars: %d\n", cellarCount)
	fmt.Printf("Total cellar rows: %d\n", totalEntries)
	fmt.Printf("Total bottles: %d\n", totalBottles)
	if cellarCount > 0 {
		fmt.Printf("Average bottles per cellar: %.1f\n", float64(totalBottles)/float64(cellarCount))
	}
}
