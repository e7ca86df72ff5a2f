package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port          int              `json:"port"`
	JWTSecret     string           `json:"jwt_secret"`
	JWTTTLHours   int              `json:"jwt_ttl_hours"`
	LogConfig     logger.LogConfig `json:"log_config"`
	DB            DatabaseConfig   `json:"db"`
	Mail          MailConfig       `json:"mail"`
	OTP           OTPConfig        `json:"otp"`
	Corpus        CorpusConfig     `json:"corpus"`
	AI            AIConfig         `json:"ai"`
	CORSAllowlist []string         `json:"cors_allowlist"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type MailConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

type OTPConfig struct {
	TTLMinutes            int    `json:"ttl_minutes"`
	ResendCooldownSeconds int    `json:"resend_cooldown_seconds"`
	RateWindowSeconds     int    `json:"rate_window_seconds"`
	DevAcceptAny          bool   `json:"dev_accept_any"`
	CleanupSpec           string `json:"cleanup_spec"`
	FallbackCacheSize     int    `json:"fallback_cache_size"`
}

type CorpusConfig struct {
	Type string   `json:"type"`
	Path string   `json:"path"`
	S3   S3Config `json:"s3"`
}

type S3Config struct {
	Endpoint  string `json:"endpoint"`
	Region    string `json:"region"`
	Bucket    string `json:"bucket"`
	Key       string `json:"key"`
	SecretID  string `json:"secret_id"`
	SecretKey string `json:"secret_key"`
}

type AIConfig struct {
	Enable         bool   `json:"enable"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
	APIKey         string `json:"api_key"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.DB.DSN == "" && cfg.DB.Host == "" {
		return nil, fmt.Errorf("db.dsn or db.host is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.OTP.TTLMinutes == 0 {
		cfg.OTP.TTLMinutes = 10
	}
	if cfg.OTP.ResendCooldownSeconds == 0 {
		cfg.OTP.ResendCooldownSeconds = 60
	}
	if cfg.OTP.RateWindowSeconds == 0 {
		cfg.OTP.RateWindowSeconds = 1
	}
	if cfg.OTP.CleanupSpec == "" {
		cfg.OTP.CleanupSpec = "0 * * * *"
	}
	if cfg.OTP.FallbackCacheSize == 0 {
		cfg.OTP.FallbackCacheSize = 16
	}
	if cfg.Corpus.Type == "" {
		cfg.Corpus.Type = "local"
	}
	switch cfg.Corpus.Type {
	case "local":
		if cfg.Corpus.Path == "" {
			return nil, fmt.Errorf("corpus.path is required for local corpus")
		}
	case "s3":
		if cfg.Corpus.S3.Bucket == "" || cfg.Corpus.S3.Key == "" {
			return nil, fmt.Errorf("corpus.s3 bucket/key are required for s3 corpus")
		}
	default:
		return nil, fmt.Errorf("corpus.type must be local or s3")
	}
	if cfg.AI.Enable {
		if cfg.AI.Provider == "" {
			cfg.AI.Provider = "gemini"
		}
		if cfg.AI.Model == "" {
			return nil, fmt.Errorf("ai.model is required when ai is enabled")
		}
		if cfg.AI.TimeoutSeconds == 0 {
			cfg.AI.TimeoutSeconds = 15
		}
	}
	return &cfg, nil
}
