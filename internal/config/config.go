package config

import "time"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Render    RenderConfig    `mapstructure:"render"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Hosted    HostedConfig    `mapstructure:"hosted"`
	Firestore FirestoreConfig `mapstructure:"firestore"`
	AI        AIConfig        `mapstructure:"ai"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RenderConfig struct {
	Watermark   string        `mapstructure:"watermark"`
	PDFAttempts int           `mapstructure:"pdf_attempts"`
	Timeout     time.Duration `mapstructure:"timeout"`
	ChromePath  string        `mapstructure:"chrome_path"`
}

// Storage backends.
const (
	StorageFS = "fs"
	StorageS3 = "s3"
)

type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
	Bucket  string `mapstructure:"bucket"`
	Region  string `mapstructure:"region"`
	Prefix  string `mapstructure:"prefix"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Hosted one-pager backends.
const (
	HostedPostgres  = "postgres"
	HostedFirestore = "firestore"
)

type HostedConfig struct {
	Backend string `mapstructure:"backend"`
}

type FirestoreConfig struct {
	ProjectID  string `mapstructure:"project_id"`
	Collection string `mapstructure:"collection"`
}

type AIConfig struct {
	ServiceURL string        `mapstructure:"service_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	LabelsTTL  time.Duration `mapstructure:"labels_ttl"`
}
