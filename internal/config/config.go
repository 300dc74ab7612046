package config

import (
	"os"
)

type Config struct {
	ServerAddress      string
	JWTSecret          string
	MongoURI           string
	MongoDB            string
	DataDir            string
	GithubClientID     string
	GithubClientSecret string
}

func Load() *Config {
	return &Config{
		ServerAddress:      getEnv("SERVER_ADDRESS", ":5000"),
		JWTSecret:          getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		MongoURI:           getEnv("MONGODB_URI", ""),
		MongoDB:            getEnv("MONGODB_DB", "devconnector"),
		DataDir:            getEnv("DATA_DIR", "./data"),
		GithubClientID:     getEnv("GITHUB_CLIENT_ID", ""),
		GithubClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
