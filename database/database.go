package database

import (
	"fmt"

	"bossmaids/config"
)

// New selects the backing store once per process: the local demo store when
// no remote backend is configured, otherwise the configured remote driver.
// Callers hold only the Store interface and never learn which one is active.
func New(cfg config.Config) (Store, error) {
	if cfg.DemoMode() {
		return NewLocalStore(cfg.DemoDataDir)
	}
	switch cfg.StorageDriver {
	case "mongo":
		return NewMongoStore(cfg.MongoURI, cfg.MongoDatabase)
	case "supabase":
		return NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
