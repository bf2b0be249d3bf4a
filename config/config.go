package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	Port           string
	MaxUploadBytes int64
}

type CollectionName string

var DB_Collection = struct {
	Users  CollectionName
	Posts  CollectionName
	Cities CollectionName
}{
	Users:  "users",
	Posts:  "posts",
	Cities: "cities",
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "eyesDB"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		Port:           getEnv("APP_PORT", "8080"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 16<<20),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d: %v", key, defaultValue, err)
		return defaultValue
	}
	return n
}
