package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/zid-upsell/backend/internal/config"
	"github.com/zid-upsell/backend/internal/recommendation"
	"github.com/zid-upsell/backend/internal/zid"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(checkMiddleware)

	store, db := newSnapshotStore(cfg)
	if db != nil {
		defer db.Close()
	}

	client := zid.NewClient(cfg.ZidAPIURL, cfg.ZidAccessToken)
	manager := recommendation.NewManager(store, client)
	handler := recommendation.NewHandler(recommendation.NewService(manager))

	handler.RegisterPublicRoutes(app)

	// the admin refresh endpoint sits behind JWT, everything else is public
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))
	handler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// newSnapshotStore picks the snapshot backend: Postgres when DATABASE_URL is
// set, the JSON cache file otherwise. The returned db is nil for the file
// backend.
func newSnapshotStore(cfg config.Config) (recommendation.SnapshotStore, *sql.DB) {
	if cfg.DatabaseURL == "" {
		return recommendation.NewFileStore(cfg.SnapshotFile), nil
	}

	db := mustOpenDB(cfg.DatabaseURL)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshot (
		id SERIAL PRIMARY KEY,
		payload jsonb NOT NULL,
		created_at TEXT
	)`); err != nil {
		panic(err)
	}
	return recommendation.NewPostgresStore(db), db
}

func mustOpenDB(dbURL string) *sql.DB {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

func checkMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	fmt.Printf("URL = %s, Method = %s, Start Time = %v\n", c.OriginalURL(), c.Method(), start)
	return c.Next()
}
