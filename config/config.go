package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Env          string
	MongoURI     string
	DatabaseName string
	CSVPath      string
	AllowOrigins []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from the environment, with a .env file honored
// when present. Every setting has a development default.
func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return &Config{
		Port:         getEnv("PORT", "5000"),
		Env:          getEnv("ENV", "development"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName: getEnv("MONGO_DB", "salesbrowser"),
		CSVPath:      getEnv("CSV_PATH", "data/sales_data.csv"),
		AllowOrigins: strings.Split(getEnv("ALLOW_ORIGINS", "http://localhost:5173"), ","),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
