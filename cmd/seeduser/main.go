// cmd/seeduser/main.go — Crea/actualiza la ubicacion y el usuario de demo.
// Uso: go run ./cmd/seeduser
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/lturcios/turicash-backend/internal/config"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	username := "admin"
	pin := "1234"
	fullName := "Admin Demo"
	locationName := "Sucursal Central"

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	ctx := context.Background()

	// locations.name carries no unique constraint; look the row up first so
	// re-running the seeder never duplicates it.
	var locationID uint
	if err := db.WithContext(ctx).Raw(
		`SELECT id FROM locations WHERE name = ? ORDER BY id LIMIT 1`, locationName,
	).Scan(&locationID).Error; err != nil {
		log.Fatalf("location lookup error: %v", err)
	}
	if locationID == 0 {
		if err := db.WithContext(ctx).Raw(`
			INSERT INTO locations (name, is_active, created_at, updated_at)
			VALUES (?, true, NOW(), NOW())
			RETURNING id
		`, locationName).Scan(&locationID).Error; err != nil {
			log.Fatalf("location insert error: %v", err)
		}
	}

	result := db.WithContext(ctx).Exec(`
		INSERT INTO users (username, pin_hash, full_name, location_id, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, true, NOW(), NOW())
		ON CONFLICT (username) DO UPDATE
		SET pin_hash = EXCLUDED.pin_hash,
		    full_name = EXCLUDED.full_name,
		    location_id = EXCLUDED.location_id,
		    is_active = true,
		    updated_at = NOW()
	`, username, string(hash), fullName, locationID)
	if result.Error != nil {
		log.Fatalf("user insert error: %v", result.Error)
	}
	fmt.Printf("✅ Usuario '%s' creado/actualizado con PIN '%s' en '%s'\n", username, pin, locationName)
}
