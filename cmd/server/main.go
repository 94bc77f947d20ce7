package main

import (
	"log"

	"inventory-backend/internal/config"
	"inventory-backend/internal/database"
	"inventory-backend/internal/server"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := server.New(cfg.CORSOrigins)

	log.Println("Server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
