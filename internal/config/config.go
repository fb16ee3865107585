package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config carries the environment-driven settings.
type Config struct {
	PublicURL      string
	AllowedOrigins []string
	LogLevel       string
}

// Load reads .env when present and builds the config from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("failed to load .env file")
	}

	cfg := &Config{
		PublicURL: getEnv("PUBLIC_URL", "http://localhost:8090"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}

	origins := getEnv("ALLOWED_ORIGINS", "*")
	for _, origin := range strings.Split(origins, ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg
}

// ConfigureLogging applies the configured log level and a consistent format.
func (c *Config) ConfigureLogging() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
