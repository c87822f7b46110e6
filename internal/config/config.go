package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Gateway struct {
		StoreID       string `yaml:"store_id"`
		StorePassword string `yaml:"store_password"`
		BaseURL       string `yaml:"base_url"`
		SuccessURL    string `yaml:"success_url"`
		FailURL       string `yaml:"fail_url"`
		CancelURL     string `yaml:"cancel_url"`
	} `yaml:"gateway"`
	Frontend struct {
		SuccessRedirect string `yaml:"success_redirect"`
		FailRedirect    string `yaml:"fail_redirect"`
		CancelRedirect  string `yaml:"cancel_redirect"`
	} `yaml:"frontend"`
	Firebase struct {
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"firebase"`
}

// LoadConfig reads the yaml file named by CONFIG_PATH, then lets a handful
// of environment variables override the secrets so they stay out of the
// file.
func LoadConfig() Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Address = addr
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}
	if storeID := os.Getenv("SSLCZ_STORE_ID"); storeID != "" {
		cfg.Gateway.StoreID = storeID
	}
	if storePass := os.Getenv("SSLCZ_STORE_PASSWD"); storePass != "" {
		cfg.Gateway.StorePassword = storePass
	}
	return cfg
}
