package infra

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerName          string
	ServerPort          string
	Environment         string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBDatabase          string
	DBSSLMode           string
	DBDriver            string
	SignatureToken      string
	AwsAccessKeyID      string
	AwsSecretAccessKey  string
	AwsRegion           string
	AwsBucketName       string
	GoogleMapsKey       string
	GoogleClientId      string
	RedisUrl            string
	ApiBaseUrl          string
	FeedbackDelay       time.Duration
	FeedbackErrorChance float64
	FeedbackAutoReset   time.Duration
}

func NewConfig() Config {
	if os.Getenv("ENVIRONMENT") == "" {
		if err := godotenv.Load(".env"); err != nil {
			panic("Error loading env file")
		}
	}

	return Config{
		ServerName:          os.Getenv("SERVER_NAME"),
		ServerPort:          os.Getenv("SERVER_PORT"),
		Environment:         os.Getenv("ENVIRONMENT"),
		DBHost:              os.Getenv("DB_HOST"),
		DBPort:              os.Getenv("DB_PORT"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBDatabase:          os.Getenv("DB_DATABASE"),
		DBSSLMode:           os.Getenv("DB_SSL_MODE"),
		DBDriver:            os.Getenv("DB_DRIVER"),
		SignatureToken:      os.Getenv("SIGNATURE_STRING"),
		AwsAccessKeyID:      os.Getenv("AWS_ACCESS_KEY"),
		AwsSecretAccessKey:  os.Getenv("AWS_SECRET_KEY"),
		AwsRegion:           os.Getenv("AWS_REGION"),
		AwsBucketName:       os.Getenv("AWS_BUCKET_NAME"),
		GoogleMapsKey:       os.Getenv("GOOGLE_MAPS_KEY"),
		GoogleClientId:      os.Getenv("GOOGLE_CLIENT_ID"),
		RedisUrl:            os.Getenv("REDIS_URL"),
		ApiBaseUrl:          os.Getenv("API_BASE_URL"),
		FeedbackDelay:       envMillis("FEEDBACK_DELAY_MS", 0),
		FeedbackErrorChance: envFloat("FEEDBACK_ERROR_CHANCE", 0),
		FeedbackAutoReset:   envMillis("FEEDBACK_AUTO_RESET_MS", 0),
	}
}

// ApiBaseUrl vazio liga o modo offline: transições acontecem só em memória.
func (c Config) Offline() bool {
	return c.ApiBaseUrl == ""
}

func envMillis(key string, def int64) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(def) * time.Millisecond
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Duration(def) * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

func envFloat(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
