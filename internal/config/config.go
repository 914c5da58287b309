package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	Auth    AuthConfig
	Logger  LoggerConfig
	Uploads UploadsConfig
	S3      S3Config
	Events  EventsConfig
	Catalog CatalogConfig
}

type ServerConfig struct {
	AppEnv          string
	Port            string
	ShutdownTimeout time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// UploadsConfig controla dónde se guardan las imágenes subidas.
// Backend es "disk" o "s3".
type UploadsConfig struct {
	Backend      string
	Dir          string
	PublicPrefix string
	MaxBytes     int64
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
}

// EventsConfig queda deshabilitado cuando AMQPURL está vacío.
type EventsConfig struct {
	AMQPURL string
	Queue   string
}

type CatalogConfig struct {
	DefaultLimit int
	MaxLimit     int
}

func LoadConfig() *Config {
	// Solo cargar .env en desarrollo local
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Error loading .env file:", err)
		} else {
			log.Println("✅ .env file loaded successfully")
		}
	} else {
		log.Println("🌐 Using system environment variables")
	}

	return FromEnv()
}

// DevJWTSecret solo se usa en desarrollo cuando falta JWT_SECRET.
const DevJWTSecret = "change-me-in-production"

var ErrJWTSecret = errors.New("JWT_SECRET must be set outside development")

// FromEnv arma la configuración solo con variables de entorno.
func FromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			AppEnv:          getEnv("APP_ENV", "development"),
			Port:            getEnv("PORT", "5000"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB", "storefront"),
			Timeout:  getEnvDuration("MONGO_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			TokenTTL:   getEnvDuration("TOKEN_TTL", 24*time.Hour),
			BcryptCost: getEnvInt("BCRYPT_COST", 10),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", ""),
			Encoding: getEnv("LOG_ENCODING", ""),
		},
		Uploads: UploadsConfig{
			Backend:      strings.ToLower(getEnv("UPLOAD_BACKEND", "disk")),
			Dir:          getEnv("UPLOAD_DIR", "public/uploads"),
			PublicPrefix: getEnv("UPLOAD_PUBLIC_PREFIX", "/public/uploads"),
			MaxBytes:     int64(getEnvInt("UPLOAD_MAX_BYTES", 5<<20)),
		},
		S3: S3Config{
			Bucket:          getEnv("S3_BUCKET", ""),
			Region:          getEnv("S3_REGION", "auto"),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			PublicURL:       getEnv("S3_PUBLIC_URL", ""),
		},
		Events: EventsConfig{
			AMQPURL: getEnv("RABBITMQ_URL", ""),
			Queue:   getEnv("EVENTS_QUEUE", "catalog.events"),
		},
		Catalog: CatalogConfig{
			DefaultLimit: getEnvInt("CATALOG_DEFAULT_LIMIT", 12),
			MaxLimit:     getEnvInt("CATALOG_MAX_LIMIT", 100),
		},
	}
	if cfg.Auth.JWTSecret == "" && cfg.IsDevelopment() {
		cfg.Auth.JWTSecret = DevJWTSecret
	}
	return cfg
}

// Validate rechaza configuraciones con las que el servicio no debe arrancar.
func (c *Config) Validate() error {
	if !c.IsDevelopment() && (c.Auth.JWTSecret == "" || c.Auth.JWTSecret == DevJWTSecret) {
		return ErrJWTSecret
	}
	return nil
}

// IsDevelopment indica si el servicio corre en modo desarrollo.
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "dev"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
