package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"HotelPos/app/security"

	"github.com/joho/godotenv"
)

// AppConfig holds all application configuration
type AppConfig struct {
	// Database Configuration
	Database DatabaseConfig `json:"database"`

	// Business Information (printed on every receipt header)
	Business BusinessConfig `json:"business"`

	// Printer Configuration
	Printer PrinterConfig `json:"printer"`

	// First run flag
	FirstRun bool `json:"first_run"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
	SSLMode  string `json:"ssl_mode"`

	// LocalPath switches the service to a file-backed SQLite database
	// when set; the PostgreSQL settings above are ignored.
	LocalPath string `json:"local_path"`
}

// BusinessConfig holds business information
type BusinessConfig struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// PrinterConfig holds the print sink settings
type PrinterConfig struct {
	// Type is "network" (JetDirect tcp:9100) or "file" (spool directory).
	Type     string `json:"type"`
	Address  string `json:"address"`
	SpoolDir string `json:"spool_dir"`
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}

	configDir := filepath.Join(base, "HotelPos")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Load reads configuration from config.json, falling back to a default
// config when none exists. A .env file, when present, is loaded first so
// environment overrides keep working (DATABASE_URL and friends).
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env file")
	}

	exists, err := ConfigExists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return CreateDefaultConfig()
	}
	return LoadConfig()
}

// LoadConfig loads configuration from config.json and decrypts sensitive fields
func LoadConfig() (*AppConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}

	if err := cfg.decryptSensitiveFields(); err != nil {
		return nil, fmt.Errorf("could not decrypt sensitive fields: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to config.json after encrypting sensitive fields
func SaveConfig(cfg *AppConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Work on a copy so the caller keeps the plaintext password
	cfgCopy := *cfg
	if err := cfgCopy.encryptSensitiveFields(); err != nil {
		return fmt.Errorf("could not encrypt sensitive fields: %w", err)
	}

	data, err := json.MarshalIndent(&cfgCopy, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}

	return nil
}

// ConfigExists checks if config file exists
func ConfigExists() (bool, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// CreateDefaultConfig creates a default configuration file
func CreateDefaultConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "hotelpos",
			Username: "postgres",
			Password: "",
			SSLMode:  "disable",
		},
		Business: BusinessConfig{
			Name:    "Mi Hotel",
			Address: "",
			Phone:   "",
			Email:   "",
		},
		Printer: PrinterConfig{
			Type:     "file",
			SpoolDir: "./spool",
		},
		FirstRun: true,
	}

	if err := SaveConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MarkSetupComplete marks the first run as complete
func MarkSetupComplete() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	cfg.FirstRun = false
	return SaveConfig(cfg)
}

// encryptSensitiveFields encrypts sensitive configuration fields
func (cfg *AppConfig) encryptSensitiveFields() error {
	var err error
	if cfg.Database.Password != "" {
		cfg.Database.Password, err = security.Encrypt(cfg.Database.Password)
		if err != nil {
			return fmt.Errorf("could not encrypt database password: %w", err)
		}
	}
	return nil
}

// decryptSensitiveFields decrypts sensitive configuration fields
func (cfg *AppConfig) decryptSensitiveFields() error {
	var err error
	if cfg.Database.Password != "" {
		cfg.Database.Password, err = security.Decrypt(cfg.Database.Password)
		if err != nil {
			return fmt.Errorf("could not decrypt database password: %w", err)
		}
	}
	return nil
}
