package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	JWTExpireHours   int // access token lifetime
	CookieExpireDays int // token cookie lifetime

	FileUploadPath string
	MaxFileUpload  int64 // bytes

	GeocoderURL    string
	GeocoderAPIKey string

	SendgridAPIKey string
	FromEmail      string
	FromName       string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "5000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		JWTExpireHours:   getEnvInt("JWT_EXPIRE_HOURS", 720),
		CookieExpireDays: getEnvInt("COOKIE_EXPIRE_DAYS", 30),

		FileUploadPath: getEnv("FILE_UPLOAD_PATH", "./public/uploads"),
		MaxFileUpload:  int64(getEnvInt("MAX_FILE_UPLOAD", 1000000)),

		GeocoderURL:    getEnv("GEOCODER_URL", "https://www.mapquestapi.com/geocoding/v1/address"),
		GeocoderAPIKey: getEnv("GEOCODER_API_KEY", ""),

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		FromEmail:      getEnv("FROM_EMAIL", "noreply@devcamper.io"),
		FromName:       getEnv("FROM_NAME", "DevCamper"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.GeocoderAPIKey == "" {
		log.Println("Warning: GEOCODER_API_KEY not set. Geocoding requests will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
