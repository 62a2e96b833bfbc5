// Package bootstrap establishes the runtime dependencies shared by every
// command: database, schema, Redis and optional demo data.
package bootstrap

import (
	"fmt"

	"murmur/internal/cache"
	"murmur/internal/config"
	"murmur/internal/database"
	"murmur/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// Migrate runs schema auto-migration on startup.
	Migrate bool
	// SeedDemo loads the demo dataset in development environments.
	SeedDemo bool
}

// InitRuntime connects to the database and Redis and optionally migrates and
// seeds. The Redis client may be nil when Redis is unreachable; rate
// limiting then fails open.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if opts.Migrate {
		if err := database.Migrate(db); err != nil {
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemo && cfg.Env == "development" {
		if err := seed.Demo(db, seed.Options{}); err != nil {
			return nil, nil, fmt.Errorf("demo seeding failed: %w", err)
		}
	}

	return db, r, nil
}
