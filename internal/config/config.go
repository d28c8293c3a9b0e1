package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	Log     LogConfig
	CORS    CORSConfig
	Billing BillingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// BillingConfig holds invoice issuance settings.
type BillingConfig struct {
	DefaultInvoicePrefix string `mapstructure:"default_invoice_prefix"`
	HSNSearchLimit       int    `mapstructure:"hsn_search_limit"`
}

// Load reads configuration from environment variables with the RXBILL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RXBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "rxbill")
	v.SetDefault("db.password", "rxbill_secret")
	v.SetDefault("db.name", "rxbill_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "rxbill")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Billing defaults
	v.SetDefault("billing.default_invoice_prefix", "PP")
	v.SetDefault("billing.hsn_search_limit", 20)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "RXBILL_SERVER_PORT",
		"server.read_timeout":            "RXBILL_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "RXBILL_SERVER_WRITE_TIMEOUT",
		"server.environment":             "RXBILL_SERVER_ENVIRONMENT",
		"db.host":                        "RXBILL_DB_HOST",
		"db.port":                        "RXBILL_DB_PORT",
		"db.user":                        "RXBILL_DB_USER",
		"db.password":                    "RXBILL_DB_PASSWORD",
		"db.name":                        "RXBILL_DB_NAME",
		"db.sslmode":                     "RXBILL_DB_SSLMODE",
		"db.max_open":                    "RXBILL_DB_MAX_OPEN",
		"db.max_idle":                    "RXBILL_DB_MAX_IDLE",
		"jwt.secret":                     "RXBILL_JWT_SECRET",
		"jwt.access_expiry":              "RXBILL_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":             "RXBILL_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                     "RXBILL_JWT_ISSUER",
		"log.level":                      "RXBILL_LOG_LEVEL",
		"log.format":                     "RXBILL_LOG_FORMAT",
		"cors.allowed_origins":           "RXBILL_CORS_ALLOWED_ORIGINS",
		"billing.default_invoice_prefix": "RXBILL_BILLING_DEFAULT_INVOICE_PREFIX",
		"billing.hsn_search_limit":       "RXBILL_BILLING_HSN_SEARCH_LIMIT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if RXBILL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("RXBILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Billing = BillingConfig{
		DefaultInvoicePrefix: v.GetString("billing.default_invoice_prefix"),
		HSNSearchLimit:       v.GetInt("billing.hsn_search_limit"),
	}

	return cfg, nil
}
