package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverGorm     = "gorm"
)

type Config struct {
	ServerPort       string
	StoreDriver      string
	SQLitePath       string
	DBHost           string
	DBPort           int
	DBUser           string
	DBPassword       string
	DBName           string
	DBSSLMode        string
	DBReset          bool
	JWTSecret        string
	JWTExpiry        int // в часах
	OperatorEmail    string
	OperatorPassword string
}

func Load() *Config {
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		StoreDriver:      getEnv("STORE_DRIVER", DriverSQLite),
		SQLitePath:       getEnv("SQLITE_PATH", "students.db"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnvAsInt("DB_PORT", 5432),
		DBUser:           getEnv("DB_USER", "max"),
		DBPassword:       getEnv("DB_PASSWORD", "123456"),
		DBName:           getEnv("DB_NAME", "students_db"),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		DBReset:          getEnvAsBool("DB_RESET", false),
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiry:        getEnvAsInt("JWT_EXPIRY", 24),
		OperatorEmail:    getEnv("OPERATOR_EMAIL", "admin@example.com"),
		OperatorPassword: getEnv("OPERATOR_PASSWORD", "admin123"),
	}
}

// Validate проверяет выбранный драйвер хранилища
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must not be empty")
		}
	case DriverPostgres, DriverGorm:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}

// PostgresDSN собирает строку подключения в формате key=value
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
