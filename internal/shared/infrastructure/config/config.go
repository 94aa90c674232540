package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata" // embedded zoneinfo for DIGEST_TIMEZONE

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	FileStorage FileStorageConfig
	Mail        MailConfig
	Digest      DigestConfig
	Thumbnail   ThumbnailConfig
}

// ServerConfig holds configuration for the local HTTP harness
type ServerConfig struct {
	Port      string
	JWTSecret string // empty leaves the invoke endpoints open
}

// FileStorageConfig holds object storage configuration
type FileStorageConfig struct {
	Backend     string // s3, minio or local
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool
	LocalPath   string
}

// MailConfig holds mail delivery configuration
type MailConfig struct {
	Backend    string // ses or outbox
	Region     string
	Endpoint   string
	From       string
	To         string
	OutboxPath string
}

// DigestConfig holds the daily digest settings
type DigestConfig struct {
	Bucket   string
	Prefix   string
	Location *time.Location
	PageSize int32
}

// ThumbnailConfig holds the thumbnail deriver settings
type ThumbnailConfig struct {
	Prefix string
	Width  int
	Height int
}

const (
	BackendS3     = "s3"
	BackendMinIO  = "minio"
	BackendLocal  = "local"
	MailSES       = "ses"
	MailOutbox    = "outbox"
	maxPageSize   = 1000
	defaultRegion = "us-east-1"
)

// Load reads configuration from environment variables
func Load() Config {
	return fromViper(newViper())
}

// LoadFile reads a config file (yaml, toml, json, env) and lets environment
// variables override any key it sets
func LoadFile(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return fromViper(v), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("port", "8080")
	v.SetDefault("serve_jwt_secret", "")

	v.SetDefault("storage_backend", BackendS3)
	v.SetDefault("s3_region", defaultRegion)
	v.SetDefault("s3_endpoint", "")
	v.SetDefault("s3_access_key", "")
	v.SetDefault("s3_secret_key", "")
	v.SetDefault("s3_use_ssl", true)
	v.SetDefault("local_storage_path", "./storage")

	v.SetDefault("mail_backend", MailSES)
	v.SetDefault("mail_region", "")
	v.SetDefault("mail_endpoint", "")
	v.SetDefault("mail_from", "")
	v.SetDefault("mail_to", "")
	v.SetDefault("mail_outbox_path", "./outbox")

	v.SetDefault("digest_bucket", "")
	v.SetDefault("digest_prefix", "input-files")
	v.SetDefault("digest_timezone", "UTC")
	v.SetDefault("digest_page_size", maxPageSize)

	v.SetDefault("thumbnail_prefix", "image-thumbnails")
	v.SetDefault("thumbnail_width", 200)
	v.SetDefault("thumbnail_height", 200)
	return v
}

func fromViper(v *viper.Viper) Config {
	s3Region := v.GetString("s3_region")
	mailRegion := v.GetString("mail_region")
	if mailRegion == "" {
		mailRegion = s3Region
	}

	return Config{
		Server: ServerConfig{
			Port:      v.GetString("port"),
			JWTSecret: v.GetString("serve_jwt_secret"),
		},
		FileStorage: FileStorageConfig{
			Backend:     strings.ToLower(v.GetString("storage_backend")),
			S3Region:    s3Region,
			S3Endpoint:  v.GetString("s3_endpoint"),
			S3AccessKey: v.GetString("s3_access_key"),
			S3SecretKey: v.GetString("s3_secret_key"),
			S3UseSSL:    v.GetBool("s3_use_ssl"),
			LocalPath:   v.GetString("local_storage_path"),
		},
		Mail: MailConfig{
			Backend:    strings.ToLower(v.GetString("mail_backend")),
			Region:     mailRegion,
			Endpoint:   v.GetString("mail_endpoint"),
			From:       v.GetString("mail_from"),
			To:         v.GetString("mail_to"),
			OutboxPath: v.GetString("mail_outbox_path"),
		},
		Digest: DigestConfig{
			Bucket:   v.GetString("digest_bucket"),
			Prefix:   v.GetString("digest_prefix"),
			Location: parseLocation(v.GetString("digest_timezone")),
			PageSize: clampPageSize(v.GetInt("digest_page_size")),
		},
		Thumbnail: ThumbnailConfig{
			Prefix: strings.Trim(v.GetString("thumbnail_prefix"), "/"),
			Width:  positiveOr(v.GetInt("thumbnail_width"), 200),
			Height: positiveOr(v.GetInt("thumbnail_height"), 200),
		},
	}
}

// parseLocation loads a time zone or falls back to UTC
func parseLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[config] unknown DIGEST_TIMEZONE %q, using UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

func clampPageSize(n int) int32 {
	if n <= 0 || n > maxPageSize {
		return maxPageSize
	}
	return int32(n)
}

func positiveOr(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}
