package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	devSecretKey          = "dev-secret"
	defaultMaxUploadBytes = 10 << 20
)

// Config is built once at startup and handed to every component that needs it.
type Config struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	AcceptedOrigins []string

	// SecretKey signs the flash cookie.
	SecretKey string

	// AdminSecret is the shared value expected in the `admin` query parameter.
	AdminSecret             string
	AdminSecretSSMParameter string

	MaxUploadBytes       int64
	GenerateColumnReport bool

	Database DatabaseConfig
	Storage  StorageConfig
	Mail     MailConfig
}

type DatabaseConfig struct {
	// URL is a postgres DSN or a sqlite:// path.
	URL         string
	ReplicaURLs []string
}

type StorageConfig struct {
	Backend    string
	LocalDir   string
	PublicBase string

	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool

	SupabaseURL string
	SupabaseKey string
}

type MailConfig struct {
	Provider string

	Server   string
	Port     int
	UseSSL   bool
	UseTLS   bool
	Username string
	Password string

	ResendAPIKey    string
	ResendFromEmail string

	// Recipient receives contact form messages.
	Recipient string
}

// Sender is the From address of outgoing mail.
func (m MailConfig) Sender() string {
	if m.Provider == "resend" && m.ResendFromEmail != "" {
		return m.ResendFromEmail
	}
	return m.Username
}

// Load reads an optional .env file and then builds the Config from the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded, reading from environment")
	}

	env := New()
	cfg := FromMap(env)

	if GetString(env, "SECRET_KEY", "") == "" {
		log.Warn().Msg("SECRET_KEY not set in environment; using insecure development key")
	}
	if GetString(env, "ADMIN_SECRET", "") == "" && cfg.AdminSecretSSMParameter == "" {
		log.Warn().Msg("ADMIN_SECRET not set; all admin requests will be denied")
	}
	if strings.HasPrefix(cfg.Database.URL, "sqlite://") && GetString(env, "DATABASE_URL", "") == "" {
		log.Info().Str("url", cfg.Database.URL).Msg("DATABASE_URL not set; falling back to local sqlite file")
	}

	return cfg
}

// FromMap builds a Config from an environment map, applying defaults.
func FromMap(env map[string]string) Config {
	mailUsername := GetString(env, "MAIL_USERNAME", GetString(env, "EMAIL_SERVER", ""))

	return Config{
		Port:         GetString(env, "PORT", "8080"),
		ReadTimeout:  time.Duration(GetInt(env, "READ_TIMEOUT_SECONDS", 180)) * time.Second,
		WriteTimeout: time.Duration(GetInt(env, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second,
		IdleTimeout:  time.Duration(GetInt(env, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,

		AcceptedOrigins: GetList(env, "ACCEPTED_ORIGINS"),

		SecretKey:               GetString(env, "SECRET_KEY", devSecretKey),
		AdminSecret:             GetString(env, "ADMIN_SECRET", ""),
		AdminSecretSSMParameter: GetString(env, "ADMIN_SECRET_SSM_PARAMETER", ""),

		MaxUploadBytes:       int64(GetInt(env, "MAX_UPLOAD_BYTES", defaultMaxUploadBytes)),
		GenerateColumnReport: GetBool(env, "GENERATE_COLUMN_REPORT", false),

		Database: DatabaseConfig{
			URL:         databaseURL(env),
			ReplicaURLs: GetList(env, "DATABASE_REPLICA_URLS"),
		},

		Storage: StorageConfig{
			Backend:     GetString(env, "STORAGE_BACKEND", "local"),
			LocalDir:    GetString(env, "STORAGE_LOCAL_DIR", filepath.Join("static", "images")),
			PublicBase:  GetString(env, "STORAGE_PUBLIC_BASE", ""),
			Bucket:      GetString(env, "STORAGE_BUCKET", ""),
			Region:      GetString(env, "STORAGE_REGION", "us-east-1"),
			Endpoint:    GetString(env, "STORAGE_ENDPOINT", ""),
			AccessKey:   GetString(env, "STORAGE_ACCESS_KEY", ""),
			SecretKey:   GetString(env, "STORAGE_SECRET_KEY", ""),
			UseSSL:      GetBool(env, "STORAGE_USE_SSL", true),
			PathStyle:   GetBool(env, "STORAGE_PATH_STYLE", false),
			SupabaseURL: GetString(env, "SUPABASE_URL", ""),
			SupabaseKey: GetString(env, "SUPABASE_SERVICE_ROLE_KEY", ""),
		},

		Mail: MailConfig{
			Provider: GetString(env, "MAIL_PROVIDER", "smtp"),
			Server:   GetString(env, "MAIL_SERVER", "smtp.gmail.com"),
			Port:     GetInt(env, "MAIL_PORT", 465),
			// Port 465 speaks implicit TLS, so SSL on and STARTTLS off by default.
			UseSSL:          GetBool(env, "MAIL_USE_SSL", true),
			UseTLS:          GetBool(env, "MAIL_USE_TLS", false),
			Username:        mailUsername,
			Password:        GetString(env, "MAIL_PASSWORD", GetString(env, "EMAIL_APP_PASSWORD", "")),
			ResendAPIKey:    GetString(env, "RESEND_API_KEY", ""),
			ResendFromEmail: GetString(env, "RESEND_FROM_EMAIL", ""),
			Recipient:       GetString(env, "CONTACT_RECIPIENT", mailUsername),
		},
	}
}

// databaseURL prefers DATABASE_URL, then the SUPABASE_DB_* settings, then a
// sqlite file in the working directory.
func databaseURL(env map[string]string) string {
	if url := GetString(env, "DATABASE_URL", ""); url != "" {
		return url
	}

	if host := GetString(env, "SUPABASE_DB_HOST", ""); host != "" {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			host,
			GetString(env, "SUPABASE_DB_USER", ""),
			GetString(env, "SUPABASE_DB_PASSWORD", ""),
			GetString(env, "SUPABASE_DB_NAME", "postgres"),
			GetString(env, "SUPABASE_DB_PORT", "5432"),
		)
	}

	return "sqlite://" + filepath.Join(".", "app.db")
}
