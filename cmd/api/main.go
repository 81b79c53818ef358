package main

import (
	"log"

	"analyzer-backend/internal/shared/config"
	"analyzer-backend/internal/shared/server"
	"analyzer-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	r := server.NewRouter(cfg)
	defer telemetry.Sync()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
