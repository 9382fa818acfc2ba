// Package db opens the application's relational database via GORM.
package db

import (
	"log"
	"path/filepath"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"health_backend/internal/app/config"
)

// Open はConfigに従ってデータベース接続を確立します。
// postgresは起動直後のDB待ちを考慮してリトライし、sqliteはローカル開発用です。
// TranslateErrorによりユニーク制約違反はgorm.ErrDuplicatedKeyへ正規化されます。
func Open(cfg *config.Config, migrate ...interface{}) *gorm.DB {
	gormCfg := &gorm.Config{TranslateError: true}

	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DB.Driver {
	case "postgres":
		deadline := time.Now().Add(60 * time.Second)
		for {
			db, err = gorm.Open(gpostgres.Open(cfg.PostgresDSN()), gormCfg)
			if err == nil {
				break
			}
			if time.Now().After(deadline) {
				log.Fatalf("DB connect failed after 60s: %v", err)
			}
			log.Printf("DB connect failed, retrying...: %v", err)
			time.Sleep(3 * time.Second)
		}
	default:
		db, err = gorm.Open(sqlite.Open(cfg.DB.SQLitePath), gormCfg)
		if err != nil {
			log.Fatalf("failed to open sqlite database: %v", err)
		}
		path, _ := filepath.Abs(cfg.DB.SQLitePath)
		log.Println("USING_SQLITE:", path)
	}

	if cfg.DB.RunMigrations && len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
