package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var defaults = map[string]interface{}{
	"server.port":          3000,
	"log.level":            "info",
	"log.format":           "json",
	"render.watermark":     "ExpertResume",
	"render.pdf_attempts":  3,
	"render.timeout":       60 * time.Second,
	"render.chrome_path":   "",
	"storage.backend":      StorageFS,
	"storage.dir":          "onepager-data",
	"storage.bucket":       "",
	"storage.region":       "",
	"storage.prefix":       "onepagers",
	"database.url":         "",
	"redis.address":        "",
	"redis.password":       "",
	"redis.db":             0,
	"redis.ttl":            24 * time.Hour,
	"hosted.backend":       HostedPostgres,
	"firestore.project_id": "",
	"firestore.collection": "hostedResumes",
	"ai.service_url":       "",
	"ai.timeout":           60 * time.Second,
	"ai.labels_ttl":        7 * 24 * time.Hour,
}

// Load reads configs/config.yaml (when present), a .env file and the
// environment. Environment keys are the upper-cased config keys with dots
// replaced by underscores, e.g. DATABASE_URL or REDIS_ADDRESS.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}
	return build(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	candidates := []string{".env", "../.env", "../../.env"}
	if root := findProjectRoot(); root != "" {
		candidates = append(candidates, filepath.Join(root, ".env"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		s, ok := v.Get(key).(string)
		if !ok || !strings.Contains(s, "$") {
			continue
		}
		if expanded := os.ExpandEnv(s); expanded != s {
			v.Set(key, expanded)
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Render.PDFAttempts < 1 {
		cfg.Render.PDFAttempts = 1
	}
	if cfg.Render.Timeout <= 0 {
		cfg.Render.Timeout = 60 * time.Second
	}
	if cfg.AI.Timeout <= 0 {
		cfg.AI.Timeout = 60 * time.Second
	}
	if cfg.AI.LabelsTTL <= 0 {
		cfg.AI.LabelsTTL = 7 * 24 * time.Hour
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Hosted.Backend = strings.ToLower(strings.TrimSpace(cfg.Hosted.Backend))
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	switch cfg.Storage.Backend {
	case StorageFS:
		if cfg.Storage.Dir == "" {
			return fmt.Errorf("storage.dir is required for the fs backend")
		}
	case StorageS3:
		if cfg.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", StorageFS, StorageS3, cfg.Storage.Backend)
	}
	switch cfg.Hosted.Backend {
	case HostedPostgres:
	case HostedFirestore:
		if cfg.Firestore.ProjectID == "" {
			return fmt.Errorf("firestore.project_id is required for the firestore hosted backend")
		}
	default:
		return fmt.Errorf("hosted.backend must be %q or %q, got %q", HostedPostgres, HostedFirestore, cfg.Hosted.Backend)
	}
	return nil
}
