package main

import (
	"log"

	"greenhill-schools/app/config"
	"greenhill-schools/app/database"
)

func main() {
	log.Println("Starting schema migration...")

	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Schema migration completed successfully!")
}
