// Package main provides a tool to export cellars from the database to JSON
// files and restore them again.
//
// Export writes one {userID}.json per cellar, the same format the local
// storage package uses, so an exported directory doubles as a standalone
// cellar store.
//
// Usage:
//
//	DB_PATH=~/.cellar-server/db go run ./cmd/backup export --dir=./cellars
//	DB_PATH=~/.cellar-server/db go run ./cmd/backup restore --dir=./cellars
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/luberoncellar/cellar-server/internal/store"
	"github.com/luberoncellar/cellar-server/internal/store/local"
)

var dir = flag.String("dir", "./cellars", "Directory for cellar JSON files")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [export|restore] --dir=<path>\n", os.Args[0])
		flag.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(2)
	}
	mode := os.Args[1]
	if err := flag.CommandLine.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, ".cellar-server", "db")
	}

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	storage, err := local.NewStorage(*dir)
	if err != nil {
		log.Fatalf("Failed to open cellar directory: %v", err)
	}

	ctx := context.Background()

	switch mode {
	case "export":
		if err := exportCellars(ctx, s, storage); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
	case "restore":
		if err := restoreCellars(ctx, s, storage, *dir); err != nil {
			log.Fatalf("Restore failed: %v", err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func exportCellars(ctx context.Context, s *store.Store, storage *local.Storage) error {
	exported := 0

	for user, err := range s.Users.List(ctx) {
		if err != nil {
			return err
		}

		cellar, err := s.LoadCellar(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("load cellar for %s: %w", user.Email, err)
		}
		if len(cellar.Entries) == 0 {
			continue
		}

		if err := storage.Save(ctx, cellar); err != nil {
			return fmt.Errorf("write cellar for %s: %w", user.Email, err)
		}

		fmt.Printf("  Exported %s: %d rows, %d bottles\n",
			user.Email, len(cellar.Entries), cellar.TotalBottles())
		exported++
	}

	fmt.Printf("Exported %d cellars\n", exported)
	return nil
}

func restoreCellars(ctx context.Context, s *store.Store, storage *local.Storage, dir string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	restored := 0

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		userID := strings.TrimSuffix(f.Name(), ".json")

		// Only restore cellars whose owner still exists
		if _, err := s.Users.Get(ctx, userID); err != nil {
			fmt.Printf("  Skipping %s: no such user\n", userID)
			continue
		}

		cellar, err := storage.Load(ctx, userID)
		if err != nil {
			return fmt.Errorf("read cellar %s: %w", userID, err)
		}

		if err := s.SaveCellar(ctx, cellar); err != nil {
			return fmt.Errorf("save cellar %s: %w", userID, err)
		}

		fmt.Printf("  Restored %s: %d rows\n", userID, len(cellar.Entries))
		restored++
	}

	fmt.Printf("Restored %d cellars\n", restored)
	return nil
}
