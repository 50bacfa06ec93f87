package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresURL string
	MongoURL    string
	Port        string

	SourceFolder string
	DestFolder   string
	UploadFolder string
	PDFFolder    string

	PollInterval time.Duration
	WorkerCount  int
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		PostgresURL:  os.Getenv("POSTGRES_URL"),
		MongoURL:     os.Getenv("MONGO_URL"),
		Port:         os.Getenv("PORT"),
		SourceFolder: os.Getenv("SOURCE_FOLDER"),
		DestFolder:   os.Getenv("DEST_FOLDER"),
		UploadFolder: os.Getenv("UPLOAD_FOLDER"),
		PDFFolder:    os.Getenv("PDF_FOLDER"),
		PollInterval: durationEnv("POLL_INTERVAL", 30*time.Second),
		WorkerCount:  intEnv("WORKER_COUNT", 4),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SourceFolder == "" {
		cfg.SourceFolder = "./data/inbound"
	}
	if cfg.DestFolder == "" {
		cfg.DestFolder = "./data/processed"
	}
	if cfg.UploadFolder == "" {
		cfg.UploadFolder = cfg.SourceFolder
	}
	if cfg.PDFFolder == "" {
		cfg.PDFFolder = "./pdfs"
	}
	return cfg
}

func intEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("invalid %s=%q, using default %d", key, v, def)
	}
	return def
}

func durationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("invalid %s=%q, using default %s", key, v, def)
	}
	return def
}
