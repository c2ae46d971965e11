package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Storage StorageConfig
	Refresh RefreshConfig
	Upload  UploadConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
}

type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	// AuthToken is an optional bearer token from the identity provider.
	// When set, its subject claim supersedes the locally generated user id.
	AuthToken string
}

type StorageConfig struct {
	// DataDir holds the local sqlite store. Clearing it resets the
	// client's identity and cached state.
	DataDir string
}

type RefreshConfig struct {
	NotificationInterval time.Duration
	MedicationInterval   time.Duration
}

type UploadConfig struct {
	MaxFileSize      int64
	SupportedFormats []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "medicsense.log"),
		},
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:5000/api"),
			RequestTimeout: time.Duration(getEnvAsInt("API_REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
			AuthToken:      getEnv("AUTH_TOKEN", ""),
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", defaultDataDir()),
		},
		Refresh: RefreshConfig{
			NotificationInterval: time.Duration(getEnvAsInt("NOTIFICATION_REFRESH_SECONDS", 30)) * time.Second,
			MedicationInterval:   time.Duration(getEnvAsInt("MEDICATION_REFRESH_SECONDS", 60)) * time.Second,
		},
		Upload: UploadConfig{
			MaxFileSize:      int64(getEnvAsInt("MAX_FILE_SIZE_BYTES", 10*1024*1024)),
			SupportedFormats: []string{"image/jpeg", "image/png", "image/webp"},
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".medicsense"
	}
	return filepath.Join(home, ".medicsense")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
