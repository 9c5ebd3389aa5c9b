package config

import "os"

// Config holds environment-driven configuration.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string
	// ZidAPIURL is the base URL of the Zid REST API.
	ZidAPIURL string
	// ZidAccessToken authenticates requests against the Zid API.
	ZidAccessToken string
	// SnapshotFile is where the fetched catalog/order snapshot is cached.
	SnapshotFile string
	// DatabaseURL, when set, switches the snapshot cache to Postgres.
	DatabaseURL string
	// JWTSecret signs tokens accepted on the protected admin routes.
	JWTSecret string
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr:           getenv("APP_ADDR", ":8080"),
		ZidAPIURL:      getenv("ZID_API_URL", "https://api.zid.sa"),
		ZidAccessToken: os.Getenv("ZID_ACCESS_TOKEN"),
		SnapshotFile:   getenv("SNAPSHOT_FILE", "./storage/cache.json"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
