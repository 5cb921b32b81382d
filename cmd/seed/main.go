// Command seed fills the configured database with sample marketplace data.
package main

import (
	"context"
	"flag"
	"log"

	"tomati/internal/config"
	"tomati/internal/database"
	"tomati/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of users to create")
	flag.IntVar(&opts.Products, "products", opts.Products, "number of products to create")
	flag.IntVar(&opts.Likes, "likes", opts.Likes, "number of likes to record")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(context.Background(), db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
