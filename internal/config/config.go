package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	AccessTokenSecret  string
	RefreshTokenSecret string

	MongoURI string
	MongoDB  string

	ClientOrigin string

	StorageType string // "s3" or "local"
	S3Bucket    string
	S3Region    string
	UploadDir   string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		AppPort: envOrDefault("APP_PORT", "8080"),

		AccessTokenSecret:  envOrDefault("ACCESS_TOKEN_SECRET", "your-access-secret-key"),
		RefreshTokenSecret: envOrDefault("REFRESH_TOKEN_SECRET", "your-refresh-secret-key"),

		MongoURI: os.Getenv("MONGODB_URL"),
		MongoDB:  envOrDefault("MONGODB_DATABASE", "chat"),

		ClientOrigin: envOrDefault("CLIENT_ORIGIN", "http://localhost:5173"),

		StorageType: envOrDefault("STORAGE_TYPE", "local"),
		S3Bucket:    os.Getenv("AWS_BUCKET"),
		S3Region:    os.Getenv("AWS_REGION"),
		UploadDir:   envOrDefault("UPLOAD_DIR", "uploads"),
	}

	return cfg
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
