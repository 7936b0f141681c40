package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// configPaths are searched in order; the first file found wins. CONFIG_PATH
// overrides the search.
var configPaths = []string{"config.yaml", "config.yml", "/etc/foliohub/config.yaml"}

// Config is the full runtime configuration. Precedence: env > file > defaults.
type Config struct {
	Server struct {
		Host string `koanf:"host"`
		Port int    `koanf:"port"`
	} `koanf:"server"`
	DB struct {
		DSN         string `koanf:"dsn"`
		AutoMigrate bool   `koanf:"auto_migrate"`
	} `koanf:"db"`
	JWT struct {
		Secret string        `koanf:"secret"`
		TTL    time.Duration `koanf:"ttl"`
	} `koanf:"jwt"`
	Storage struct {
		Driver string `koanf:"driver"` // "local" or "s3"
	} `koanf:"storage"`
	S3 struct {
		Bucket    string `koanf:"bucket"`
		Region    string `koanf:"region"`
		Endpoint  string `koanf:"endpoint"`
		PublicURL string `koanf:"public_url"`
		AccessKey string `koanf:"access_key"`
		SecretKey string `koanf:"secret_key"`
	} `koanf:"s3"`
	Upload struct {
		Base      string `koanf:"base"`
		PublicURL string `koanf:"public_url"`
	} `koanf:"upload"`
	CORS struct {
		Origins []string `koanf:"origins"`
	} `koanf:"cors"`
	Log struct {
		Level  string `koanf:"level"`
		Format string `koanf:"format"`
	} `koanf:"log"`
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8081
	cfg.DB.AutoMigrate = true
	cfg.JWT.TTL = 7 * 24 * time.Hour
	cfg.Storage.Driver = "local"
	cfg.Upload.Base = "uploads"
	cfg.Upload.PublicURL = "/public"
	cfg.CORS.Origins = []string{"http://localhost:3000", "http://localhost:5173"}
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	return cfg
}

// loadConfig builds the layered configuration. A .env file, if present, is
// loaded first without overriding variables already set in the environment.
func loadConfig() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// DB_AUTO_MIGRATE -> db.auto_migrate, JWT_SECRET -> jwt.secret, etc.
	if err := k.Load(env.Provider("", ".", envToPath), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	// Comma-separated env values for slice fields.
	if v := k.String("cors.origins"); v != "" && strings.Contains(v, ",") {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := k.Set("cors.origins", parts); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// envToPath maps WHATEVER_LIKE_THIS to whatever.like_this: the first
// underscore separates the section, the rest stays part of the key.
func envToPath(s string) string {
	s = strings.ToLower(s)
	return strings.Replace(s, "_", ".", 1)
}

func findConfigFile() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range configPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// watchConfig re-applies the log level when the config file changes on
// disk. Events are debounced; editors tend to fire several per save.
func watchConfig(path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return err
	}
	go func() {
		defer w.Close()
		var pending bool
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					pending = true
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("config watcher error")
			case <-ticker.C:
				if !pending {
					continue
				}
				pending = false
				cfg, err := loadConfig()
				if err != nil {
					log.Warn().Err(err).Msg("config reload failed")
					continue
				}
				applyLogLevel(cfg.Log.Level)
				log.Info().Str("level", cfg.Log.Level).Msg("config reloaded")
			}
		}
	}()
	return nil
}
