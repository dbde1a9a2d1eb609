package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

const AVATAR_SIZE = 64

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
)

type DBConfig struct {
	User     string
	Pass     string
	Host     string
	Name     string
	TLS      bool
	MaxConns int
}

// DSN builds a go-sql-driver/mysql data source name
func (c DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?tls=%v&parseTime=true&multiStatements=true",
		c.User, c.Pass, c.Host, c.Name, c.TLS)
}

type Config struct {
	Port               string
	GinMode            string
	FEOrigins          []string
	DB                 DBConfig
	StorageBucket      string
	RedisURL           string // rate limiting is off when empty
	RateLimitPerMinute int
}

func Load() Config {
	return Config{
		Port:      getenv("PORT", "8080"),
		GinMode:   getenv("GIN_MODE", "debug"),
		FEOrigins: strings.Split(getenv("FE_ORIGINS", "http://localhost:3000"), ";"),
		DB: DBConfig{
			User:     os.Getenv("DB_USER"),
			Pass:     os.Getenv("DB_PASS"),
			Host:     getenv("DB_HOST", "localhost:3306"),
			Name:     getenv("DB_NAME", "heddit"),
			TLS:      getenvBool("DB_TLS", true),
			MaxConns: getenvInt("DB_MAX_CONNS", 50),
		},
		StorageBucket:      os.Getenv("STORAGE_BUCKET"),
		RedisURL:           os.Getenv("REDIS_URL"),
		RateLimitPerMinute: getenvInt("RATE_LIMIT_PER_MINUTE", 30),
	}
}

// ConfigureFirebaseCredentials makes sure the firebase SDK can find credentials,
// writing them to a file when they are only provided as a JSON string.
func ConfigureFirebaseCredentials(targetFile string) error {
	if path, ok := os.LookupEnv(CredentialsPathEnvVar); ok {
		log.Printf("Credentials path detected in env. Expecting credentials to be at %v\n", path)
		return nil
	}
	credentialsJson, ok := os.LookupEnv(CredentialsJsonEnvVar)
	if !ok {
		return fmt.Errorf("must specify either %v (a path)"+
			" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
	}
	log.Println("Credentials JSON string detected in env.")
	if err := os.WriteFile(targetFile, []byte(credentialsJson), 0400); err != nil {
		return fmt.Errorf("error writing credentials to temp file, %w", err)
	}
	if err := os.Setenv(CredentialsPathEnvVar, targetFile); err != nil {
		return fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
	}
	return nil
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	parsed, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	parsed, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return parsed
}
