package main

import (
	"log"

	"contactdesk_backend/database"
)

// Standalone schema migration, for deploys that run migrations separately
// from serving traffic.
func main() {
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}
