package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	PolicyFile        string
	MaxFileSize       int64
	LogLevel          string
}

// LoadConfig reads settings from the environment, with a .env file loaded
// first when present.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, using environment")
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		PolicyFile:        getEnv("POLICY_FILE", "config/policies.json"),
		MaxFileSize:       10 * 1024 * 1024, // 10 MB
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
