package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port     int    `yaml:"port" env:"PORT" env-default:"4000"`
		Env      string `yaml:"env" env:"ENV" env-default:"development"`
		LogLevel string `yaml:"log_level" env:"LOGLEVEL" env-default:"info"`
	} `yaml:"server"`
	Database struct {
		DSN          string `yaml:"dsn" env:"DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"MAXOPENCONNS" env-default:"25"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"MAXIDLECONNS" env-default:"25"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"MAXIDLETIME" env-default:"15m"`
	} `yaml:"database"`
	Smtp struct {
		Host     string `yaml:"host" env:"SMTPHOST"`
		Port     int    `yaml:"port" env:"SMTPPORT" env-default:"25"`
		Username string `yaml:"username" env:"SMTPUSERNAME"`
		Password string `yaml:"password" env:"SMTPPASSWORD"`
		Sender   string `yaml:"sender" env:"SMTPSENDER" env-default:"Bookswap <no-reply@bookswap.local>"`
	} `yaml:"smtp"`
	S3 struct {
		AccessKeyID     string `yaml:"access_key_id" env:"ACCESSKEYID"`
		SecretAccessKey string `yaml:"secret_access_key" env:"SECRETACCESSKEY"`
		Region          string `yaml:"region" env:"REGION" env-default:"us-east-1"`
		Bucket          string `yaml:"bucket" env:"BUCKET"`
		Endpoint        string `yaml:"endpoint" env:"S3ENDPOINT"`
		PublicURL       string `yaml:"public_url" env:"S3PUBLICURL"`
	} `yaml:"s3"`
	Catalog struct {
		BaseURL string  `yaml:"base_url" env:"CATALOGBASEURL" env-default:"https://www.googleapis.com/books/v1"`
		APIKey  string  `yaml:"api_key" env:"GOOGLEAPIKEY"`
		Timeout string  `yaml:"timeout" env:"CATALOGTIMEOUT" env-default:"10s"`
		RPS     float64 `yaml:"rps" env:"CATALOGRPS" env-default:"5"`
		Burst   int     `yaml:"burst" env:"CATALOGBURST" env-default:"10"`
	} `yaml:"catalog"`
	Cache struct {
		SuggestionTTL string `yaml:"suggestion_ttl" env:"SUGGESTIONTTL" env-default:"1h"`
		RedisAddr     string `yaml:"redis_addr" env:"REDISADDR"`
		RedisPassword string `yaml:"redis_password" env:"REDISPASSWORD"`
		RedisDB       int    `yaml:"redis_db" env:"REDISDB"`
	} `yaml:"cache"`
	Auth struct {
		Key       string `yaml:"key" env:"AUTHKEY"`
		Issuer    string `yaml:"issuer" env:"AUTHISSUER"`
		Audience  string `yaml:"audience" env:"AUTHAUDIENCE"`
	} `yaml:"auth"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS" env-separator:" "`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"MENABLED" env-default:"true"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"USERNAME"`
		Password string `yaml:"password" env:"PASSWORD"`
	} `yaml:"basic_auth"`
}

// Decode builds the configuration from an optional .env file, an optional
// YAML file at path, and the process environment, in increasing precedence.
func Decode(path string) (Config, error) {
	var cfg Config
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
	}
	err = cleanenv.ReadEnv(&cfg)
	if err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

// Duration parses a configured duration, falling back to def when value is
// empty or malformed.
func Duration(value string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
