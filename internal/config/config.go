package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Client    ClientConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Timezone string
	LogLevel string
	// EnvFile is the path of the dotenv file that was read, empty when none was found.
	EnvFile string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	LogLevel string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// ClientConfig configures the terminal POS client.
type ClientConfig struct {
	APIURL    string
	Timeout   time.Duration
	StoreName string
	Printer   PrinterConfig
}

// PrinterConfig selects the receipt printer of the terminal client.
type PrinterConfig struct {
	Type    string
	Path    string
	Address string
	Width   int
}

// Load reads configuration from a .env file in the working directory, if
// present, and from the environment. Environment variables win.
func Load() *Config {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path.
func LoadFrom(envFile string) *Config {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	loadedFile := ""
	if err := v.ReadInConfig(); err == nil {
		loadedFile = envFile
	}

	// Set defaults
	v.SetDefault("APP_NAME", "bytechef-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "3001")
	v.SetDefault("APP_TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "bytechef")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("CORS_ALLOWED_METHODS", "")
	v.SetDefault("CORS_ALLOWED_HEADERS", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CATALOG_CACHE_TTL_SECONDS", 60)
	v.SetDefault("POS_API_URL", "http://localhost:3001")
	v.SetDefault("POS_API_TIMEOUT_SECONDS", 10)
	v.SetDefault("POS_STORE_NAME", "ByteChef")
	v.SetDefault("POS_PRINTER_TYPE", "none")
	v.SetDefault("POS_PRINTER_PATH", "")
	v.SetDefault("POS_PRINTER_ADDRESS", "")
	v.SetDefault("POS_PRINTER_WIDTH", 32)

	return &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			Timezone: v.GetString("APP_TIMEZONE"),
			LogLevel: v.GetString("LOG_LEVEL"),
			EnvFile:  loadedFile,
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Timezone: v.GetString("DB_TIMEZONE"),
			LogLevel: v.GetString("DB_LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: time.Duration(v.GetInt("CATALOG_CACHE_TTL_SECONDS")) * time.Second,
		},
		Client: ClientConfig{
			APIURL:    v.GetString("POS_API_URL"),
			Timeout:   time.Duration(v.GetInt("POS_API_TIMEOUT_SECONDS")) * time.Second,
			StoreName: v.GetString("POS_STORE_NAME"),
			Printer: PrinterConfig{
				Type:    v.GetString("POS_PRINTER_TYPE"),
				Path:    v.GetString("POS_PRINTER_PATH"),
				Address: v.GetString("POS_PRINTER_ADDRESS"),
				Width:   v.GetInt("POS_PRINTER_WIDTH"),
			},
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// Location resolves the business time zone. An unknown zone name falls back to UTC.
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC, err
	}
	return loc, nil
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// splitList splits a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
