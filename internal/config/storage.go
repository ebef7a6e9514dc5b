package config

import "fmt"

type StorageType string

const (
	StorageMemory   StorageType = "memory"
	StorageFile     StorageType = "file"
	StorageSQLite   StorageType = "sqlite"
	StoragePostgres StorageType = "postgres"
	StorageBadger   StorageType = "badger"
	StorageRedis    StorageType = "redis"
	StorageS3       StorageType = "s3"
)

type Storage struct {
	Type     StorageType     `mapstructure:"type"`
	File     FileStorage     `mapstructure:"file"`
	SQLite   SQLiteStorage   `mapstructure:"sqlite"`
	Postgres PostgresStorage `mapstructure:"postgres"`
	Badger   BadgerStorage   `mapstructure:"badger"`
	Redis    RedisStorage    `mapstructure:"redis"`
	S3       S3Storage       `mapstructure:"s3"`
}

type FileStorage struct {
	Dir string `mapstructure:"dir"`
}

type SQLiteStorage struct {
	Path string `mapstructure:"path"`
}

type PostgresStorage struct {
	DSN string `mapstructure:"dsn"`
}

type BadgerStorage struct {
	Dir string `mapstructure:"dir"` // Empty runs badger in memory
}

type RedisStorage struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type S3Storage struct {
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"` // For S3 compatible services
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Validate checks that the selected backend has the settings it needs.
func (s *Storage) Validate() error {
	switch s.Type {
	case StorageMemory, StorageBadger, StorageRedis:
	case StorageFile:
		if s.File.Dir == "" {
			return fmt.Errorf("storage.file.dir is required for file storage")
		}
	case StorageSQLite:
		if s.SQLite.Path == "" {
			return fmt.Errorf("storage.sqlite.path is required for sqlite storage")
		}
	case StoragePostgres:
		if s.Postgres.DSN == "" {
			return fmt.Errorf("storage.postgres.dsn is required for postgres storage")
		}
	case StorageS3:
		if s.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required for s3 storage")
		}
	default:
		return fmt.Errorf("unsupported storage type: %q", s.Type)
	}
	return nil
}
