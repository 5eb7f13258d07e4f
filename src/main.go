package main

import (
	"context"
	"log"
	"net/http"

	"pocketa-server/src/api"
	"pocketa-server/src/config"
	"pocketa-server/src/db"
	dbsql "pocketa-server/src/db/sql"
	"pocketa-server/src/parser"
	"pocketa-server/src/summary"
)

func main() {
	cfg := config.Load()

	// Connect to database
	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("DB migration failed: %v", err)
	}

	db.InitCache()

	engine := summary.NewEngine(&dbsql.Source{Pool: pool})
	voiceParser := parser.New(context.Background(), cfg.GeminiAPIKey)

	// Router
	router := api.NewRouter(pool, engine, voiceParser, cfg.AllowedOrigins, cfg.DemoMode)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
