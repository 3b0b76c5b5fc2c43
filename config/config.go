package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/DhavalSuthar-24/superheroes/internal/database"
	"github.com/DhavalSuthar-24/superheroes/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultJWTSecret = "your-very-strong-jwt-secret"

type Config struct {
	App struct {
		Env         string
		Port        string
		FrontendURL string
		LogLevel    string
	}
	DB struct {
		Driver   string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
		Path     string
	}
	Auth struct {
		Enabled bool
	}
	JWT struct {
		Secret        string
		ExpiryMinutes int
	}
}

// Global DB instance, accessible after ConnectDB() is called via Initialize.
var DB *gorm.DB

// Logger is the application logger, set by Initialize.
var Logger *zap.Logger = zap.NewNop()

var appConfig *Config
var once sync.Once

var defaults = map[string]interface{}{
	"APP_ENV":            "development",
	"PORT":               "5555",
	"FRONTEND_URL":       "http://localhost:4000",
	"LOG_LEVEL":          "info",
	"DB_DRIVER":          database.DriverSQLite,
	"DB_HOST":            "localhost",
	"DB_PORT":            "5432",
	"DB_USER":            "postgres",
	"DB_PASSWORD":        "password",
	"DB_NAME":            "superheroes",
	"DB_SSLMODE":         "disable",
	"DB_PATH":            "app.db",
	"AUTH_ENABLED":       "false",
	"JWT_SECRET":         defaultJWTSecret,
	"JWT_EXPIRY_MINUTES": "60",
}

// LoadConfig reads configuration from an optional config.yaml, the .env file
// and the environment, environment winning.
func LoadConfig() (*Config, error) {
	// Load .env file. It's okay if it doesn't exist, especially in production
	// where env vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on system environment variables.")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("fatal error reading config file: %w", err)
		}
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}

	appConfig = cfg
	return cfg, nil
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	// --- App Configuration ---
	cfg.App.Env = v.GetString("APP_ENV")
	cfg.App.Port = v.GetString("PORT")
	cfg.App.FrontendURL = v.GetString("FRONTEND_URL")
	cfg.App.LogLevel = v.GetString("LOG_LEVEL")

	// --- Database Configuration ---
	cfg.DB.Driver = strings.ToLower(v.GetString("DB_DRIVER"))
	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.Port = v.GetString("DB_PORT")
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.Name = v.GetString("DB_NAME")
	cfg.DB.SSLMode = v.GetString("DB_SSLMODE")
	cfg.DB.Path = v.GetString("DB_PATH")

	switch cfg.DB.Driver {
	case database.DriverSQLite, database.DriverPostgres:
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q: expected %s or %s", cfg.DB.Driver, database.DriverSQLite, database.DriverPostgres)
	}

	// --- Auth Configuration ---
	var err error
	cfg.Auth.Enabled, err = getBool(v, "AUTH_ENABLED")
	if err != nil {
		return nil, err
	}
	cfg.JWT.Secret = v.GetString("JWT_SECRET")
	cfg.JWT.ExpiryMinutes, err = getInt(v, "JWT_EXPIRY_MINUTES")
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_MINUTES: %w", err)
	}

	if cfg.Auth.Enabled && cfg.JWT.Secret == defaultJWTSecret {
		log.Println("WARNING: Using default JWT secret. Please set JWT_SECRET for production.")
	}
	if cfg.DB.Driver == database.DriverPostgres && cfg.DB.Password == "password" && cfg.App.Env == "production" {
		log.Println("WARNING: Using default DB password in production. Please set DB_PASSWORD environment variable.")
	}
	return cfg, nil
}

// DatabaseOptions translates the DB section into connection options.
func (c *Config) DatabaseOptions() database.Options {
	opts := database.Options{Driver: c.DB.Driver, LogLevel: gormlogger.Warn}
	if c.App.Env == "development" {
		opts.LogLevel = gormlogger.Info // Log SQL queries in development
	}
	if c.DB.Driver == database.DriverPostgres {
		opts.DSN = database.PostgresDSN(c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode)
	} else {
		opts.DSN = c.DB.Path
	}
	return opts
}

// ConnectDB establishes a connection to the database using the provided configuration.
// It sets the global DB variable.
func ConnectDB(dbCfg Config, log *zap.Logger) (*gorm.DB, error) {
	gormDB, err := database.Open(dbCfg.DatabaseOptions(), log)
	if err != nil {
		return nil, err
	}

	DB = gormDB
	log.Info("Successfully connected to database", zap.String("driver", dbCfg.DB.Driver))
	return gormDB, nil
}

// Initialize loads the configuration, builds the logger and connects to the
// database. Later calls return the first call's result.
func Initialize() error {
	var initErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			initErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}

		Logger, err = logger.New(loadedCfg.App.Env, loadedCfg.App.LogLevel)
		if err != nil {
			initErr = fmt.Errorf("failed to build logger: %w", err)
			return
		}

		if _, err = ConnectDB(*loadedCfg, Logger); err != nil {
			initErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
			return
		}
	})
	return initErr
}

// GetConfig returns the loaded application configuration.
// It exits the process if the configuration has not been loaded yet.
func GetConfig() *Config {
	if appConfig == nil {
		log.Fatal("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}

func getInt(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("env var %s: expected integer, got '%s'", key, raw)
	}
	return value, nil
}

func getBool(v *viper.Viper, key string) (bool, error) {
	raw := strings.TrimSpace(v.GetString(key))
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("env var %s: expected boolean, got '%s'", key, raw)
	}
	return value, nil
}
