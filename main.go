package main

import (
	"context"
	"fmt"
	"os"

	"foliohub/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var cfg *Config

func main() {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	initLogging(cfg.Log.Level, cfg.Log.Format)

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET is not set; refusing to start without a signing secret")
	}

	// `./foliohub migrate` runs migrations and exits; useful for CI and
	// permission-restricted deployments.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := initDB(cfg); err != nil {
			log.Fatal().Err(err).Msg("database init failed")
		}
		migrate(db)
		log.Info().Msg("migration completed")
		return
	}

	if err := initDB(cfg); err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	store, err = newStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("storage init failed")
	}

	if path := findConfigFile(); path != "" {
		if err := watchConfig(path); err != nil {
			log.Warn().Err(err).Msg("config watch disabled")
		}
	}

	gin.SetMode(gin.ReleaseMode)
	r := newRouter()
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info().Str("addr", addr).Str("storage", cfg.Storage.Driver).Msg("server starting")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func newStore(cfg *Config) (storage.ObjectStore, error) {
	switch cfg.Storage.Driver {
	case "s3":
		return storage.NewS3(context.Background(), storage.S3Options{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PublicURL: cfg.S3.PublicURL,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
	case "", "local":
		return storage.NewLocal(cfg.Upload.Base, cfg.Upload.PublicURL)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
