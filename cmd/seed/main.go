// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"murmur/internal/config"
	"murmur/internal/database"
	"murmur/internal/seed"
)

func main() {
	extraUsers := flag.Int("users", 5, "Extra random users per tenant")
	posts := flag.Int("posts", 10, "Posts per tenant")
	maxDays := flag.Int("days", 30, "Spread timestamps over this many days")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := seed.Demo(db, seed.Options{
		ExtraUsers:     *extraUsers,
		PostsPerTenant: *posts,
		MaxDays:        *maxDays,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
