package main

import (
	"fmt"

	"foliohub/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// allModels lists every persisted entity, in migration order.
func allModels() []any {
	return []any{
		&models.User{},
		&models.Project{},
		&models.Image{},
		&models.MusicTrack{},
		&models.Skill{},
		&models.ContactMessage{},
		&models.CVDocument{},
		&models.AnalyticsEvent{},
		&models.VisitorSession{},
	}
}

func initDB(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is not set; a Postgres DSN is required")
	}
	var err error
	db, err = gorm.Open(postgres.Open(cfg.DB.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	if cfg.DB.AutoMigrate {
		migrate(db)
	}
	return nil
}

// migrate runs AutoMigrate model by model so one failure does not block
// the rest (permission-restricted deployments migrate out of band).
func migrate(g *gorm.DB) {
	for _, m := range allModels() {
		if err := g.AutoMigrate(m); err != nil {
			log.Warn().Err(err).Msgf("migration warning: %T", m)
		}
	}
}
