package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Development fallbacks; Validate refuses them in production.
const (
	devJWTSecret         = "dev_secret"
	devSignedURLSecret   = "dev_resources_secret"
	devTeacherPassword   = "password123"
	minAdminPasswordSize = 8
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Log        LogConfig
	Dashboard  DashboardConfig
	Scheduling SchedulingConfig
	Resources  ResourcesConfig
	Accounts   AccountsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig governs dashboard caching.
type DashboardConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// SchedulingConfig carries the academic-year label stamped on new sessions and
// the optional scheduling rules that are off by default.
type SchedulingConfig struct {
	AcademicYear            string
	EnforceTeacherConflicts bool
	EnforceDateWeekday      bool
}

// ResourcesConfig controls course material storage & validation.
type ResourcesConfig struct {
	StorageDir       string
	SignedURLSecret  string
	SignedURLTTL     time.Duration
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
	PurgeWorkers     int
	PurgeRetries     int
}

// AccountsConfig holds defaults used when administrators create accounts and
// the administrator provisioned at startup when AdminEmail is set.
type AccountsConfig struct {
	DefaultTeacherPassword string
	AdminEmail             string
	AdminPassword          string
	AdminFullName          string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server must not start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Accounts.AdminEmail != "" && len(c.Accounts.AdminPassword) < minAdminPasswordSize {
		errs = append(errs, fmt.Errorf("ADMIN_PASSWORD must be at least %d characters when ADMIN_EMAIL is set", minAdminPasswordSize))
	}
	if c.Env == EnvProduction {
		if c.Accounts.DefaultTeacherPassword == "" || c.Accounts.DefaultTeacherPassword == devTeacherPassword {
			errs = append(errs, errors.New("DEFAULT_TEACHER_PASSWORD must be set in production"))
		}
		if c.JWT.Secret == "" || c.JWT.Secret == devJWTSecret {
			errs = append(errs, errors.New("JWT_SECRET must be set in production"))
		}
		if c.Resources.SignedURLSecret == "" || c.Resources.SignedURLSecret == devSignedURLSecret {
			errs = append(errs, errors.New("RESOURCES_SIGNED_URL_SECRET must be set in production"))
		}
	}
	return errors.Join(errs...)
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheEnabled: v.GetBool("ENABLE_CACHE"),
		CacheTTL:     parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
	}

	academicYear := strings.TrimSpace(v.GetString("SCHEDULING_ACADEMIC_YEAR"))
	if academicYear == "" {
		academicYear = "2025/2026"
	}
	cfg.Scheduling = SchedulingConfig{
		AcademicYear:            academicYear,
		EnforceTeacherConflicts: v.GetBool("SCHEDULING_ENFORCE_TEACHER_CONFLICTS"),
		EnforceDateWeekday:      v.GetBool("SCHEDULING_ENFORCE_DATE_WEEKDAY"),
	}

	maxFileSize := v.GetInt64("RESOURCES_MAX_FILE_SIZE")
	if maxFileSize <= 0 {
		maxFileSize = 20 * 1024 * 1024
	}
	workers := v.GetInt("RESOURCES_PURGE_WORKERS")
	if workers <= 0 {
		workers = 1
	}
	cfg.Resources = ResourcesConfig{
		StorageDir:       v.GetString("RESOURCES_STORAGE_DIR"),
		SignedURLSecret:  v.GetString("RESOURCES_SIGNED_URL_SECRET"),
		SignedURLTTL:     parseDuration(v.GetString("RESOURCES_SIGNED_URL_TTL"), 30*time.Minute),
		MaxFileSizeBytes: maxFileSize,
		AllowedMIMEs:     splitAndTrim(v.GetString("RESOURCES_ALLOWED_MIME_TYPES")),
		PurgeWorkers:     workers,
		PurgeRetries:     v.GetInt("RESOURCES_PURGE_RETRIES"),
	}

	cfg.Accounts = AccountsConfig{
		DefaultTeacherPassword: v.GetString("DEFAULT_TEACHER_PASSWORD"),
		AdminEmail:             strings.TrimSpace(v.GetString("ADMIN_EMAIL")),
		AdminPassword:          v.GetString("ADMIN_PASSWORD"),
		AdminFullName:          v.GetString("ADMIN_FULL_NAME"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "timetable")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", devJWTSecret)
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "uni-timetable-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")

	v.SetDefault("SCHEDULING_ACADEMIC_YEAR", "2025/2026")
	v.SetDefault("SCHEDULING_ENFORCE_TEACHER_CONFLICTS", false)
	v.SetDefault("SCHEDULING_ENFORCE_DATE_WEEKDAY", false)

	v.SetDefault("RESOURCES_STORAGE_DIR", "./uploads")
	v.SetDefault("RESOURCES_SIGNED_URL_SECRET", devSignedURLSecret)
	v.SetDefault("RESOURCES_SIGNED_URL_TTL", "30m")
	v.SetDefault("RESOURCES_MAX_FILE_SIZE", 20*1024*1024)
	v.SetDefault("RESOURCES_ALLOWED_MIME_TYPES", "application/pdf,application/zip,image/png,image/jpeg,text/plain,application/vnd.openxmlformats-officedocument.wordprocessingml.document,application/vnd.openxmlformats-officedocument.presentationml.presentation,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	v.SetDefault("RESOURCES_PURGE_WORKERS", 1)
	v.SetDefault("RESOURCES_PURGE_RETRIES", 3)

	v.SetDefault("DEFAULT_TEACHER_PASSWORD", devTeacherPassword)
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("ADMIN_FULL_NAME", "Administrateur")
}

// isMissingFile reports whether viper failed because .env is absent; SetConfigFile
// surfaces that as an fs error rather than ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such file")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
