package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		Enabled      bool   `yaml:"enabled"`
	} `yaml:"email"`

	Storage struct {
		Type       string `yaml:"type"`        // local, cloudflare_r2
		BasePath   string `yaml:"base_path"`   // For local storage
		BaseURL    string `yaml:"base_url"`    // Public URL base
		Bucket     string `yaml:"bucket"`      // For R2
		AccessKey  string `yaml:"access_key"`  // For R2
		SecretKey  string `yaml:"secret_key"`  // For R2
		Endpoint   string `yaml:"endpoint"`    // For R2
		PublicRead bool   `yaml:"public_read"` // Make files public by default
	} `yaml:"storage"`

	Upload struct {
		MaxSize           int64    `yaml:"max_size"`            // Max file size in bytes
		AllowedImageTypes []string `yaml:"allowed_image_types"` // MIME types accepted for image/gallery uploads
	} `yaml:"upload"`

	Payment struct {
		BaseURL         string   `yaml:"base_url"`         // Gateway API root
		EntityID        string   `yaml:"entity_id"`        // Merchant entity identifier
		BearerToken     string   `yaml:"bearer_token"`     // API auth token
		Currency        string   `yaml:"currency"`         // Fixed checkout currency
		TestMode        string   `yaml:"test_mode"`        // e.g. EXTERNAL for the sandbox
		SuccessPrefixes []string `yaml:"success_prefixes"` // Result-code prefixes counted as success
	} `yaml:"payment"`
}

var AppConfig *Config

// LoadConfig populates AppConfig from config.yaml, or from environment
// variables when DATABASE_URL is set (test/container mode). A local .env
// file is honored when present.
func LoadConfig() {
	var cfg Config

	// Best effort: absence of .env is the normal production case.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))

	cfg.Email.SMTPHost = os.Getenv("MAIL_SERVER")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("MAIL_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("MAIL_USERNAME")
	cfg.Email.SMTPPassword = os.Getenv("MAIL_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("MAIL_FROM")
	cfg.Email.Enabled = cfg.Email.SMTPHost != ""

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/uploads"

	cfg.Payment.BaseURL = os.Getenv("PAYMENT_BASE_URL")
	cfg.Payment.EntityID = os.Getenv("PAYMENT_ENTITY_ID")
	cfg.Payment.BearerToken = os.Getenv("PAYMENT_BEARER_TOKEN")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/uploads"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if len(cfg.Upload.AllowedImageTypes) == 0 {
		cfg.Upload.AllowedImageTypes = []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
		}
	}
	if cfg.Payment.BaseURL == "" {
		cfg.Payment.BaseURL = "https://eu-test.oppwa.com"
	}
	if cfg.Payment.Currency == "" {
		cfg.Payment.Currency = "EUR"
	}
	if cfg.Payment.TestMode == "" {
		cfg.Payment.TestMode = "EXTERNAL"
	}
	// Success determination is a convention of this specific gateway and is
	// treated as configuration, not hardcoded logic.
	if len(cfg.Payment.SuccessPrefixes) == 0 {
		cfg.Payment.SuccessPrefixes = []string{"000."}
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
