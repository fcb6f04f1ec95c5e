package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all settings of the service. Every value comes from the
// environment, optionally seeded from a .env file.
type Config struct {
	Port      int    `envconfig:"PORT" default:"8080"`
	UploadDir string `envconfig:"UPLOAD_DIR" default:"uploads"`

	DB struct {
		Host string `envconfig:"DBHOST" default:"localhost:3306"`
		Name string `envconfig:"DBNAME" default:"test"`
		User string `envconfig:"DBUSER"`
		Pass string `envconfig:"DBPWD"`
	}
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}
