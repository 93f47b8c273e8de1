package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	SessionSecret string
	UploadDir     string
	AppPort       string
}

// Load builds the configuration from the environment. The database
// settings and the session secret have no usable defaults, so missing
// values fail startup instead of limping along.
func Load() (*Config, error) {
	cfg := &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		UploadDir:     getEnv("UPLOAD_DIR", "public/uploads/pizza_images"),
		AppPort:       getEnv("PORT", "8080"),
	}

	switch {
	case cfg.DBHost == "":
		return nil, fmt.Errorf("DB_HOST is not set")
	case cfg.DBUser == "":
		return nil, fmt.Errorf("DB_USER is not set")
	case cfg.DBName == "":
		return nil, fmt.Errorf("DB_NAME is not set")
	case cfg.SessionSecret == "":
		return nil, fmt.Errorf("SESSION_SECRET is not set")
	}

	return cfg, nil
}

func (c *Config) dsn() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// InitDB opens the MySQL connection. TranslateError lets callers match
// gorm.ErrDuplicatedKey instead of driver-specific error codes.
func InitDB(cfg *Config) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(cfg.dsn()), &gorm.Config{TranslateError: true})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
