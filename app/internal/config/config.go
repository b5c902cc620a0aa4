package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTP       HTTP       `yaml:"http"`
	SQLite     SQLite     `yaml:"sqlite"`
	Auth       Auth       `yaml:"auth"`
	Cloudinary Cloudinary `yaml:"cloudinary"`
	Log        Log        `yaml:"log"`
	SeedFile   string     `yaml:"seed_file" env:"SEED_FILE"`
}

type HTTP struct {
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"5s"`
}

type SQLite struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"ecomshop.db"`
}

type Auth struct {
	JWTSecret     string        `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"dev-only-secret-change-me"`
	JWTExpiration time.Duration `yaml:"jwt_expiration" env-default:"168h"`
	BcryptCost    int           `yaml:"bcrypt_cost" env-default:"10"`
}

type Cloudinary struct {
	CloudName string `yaml:"cloud_name" env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `yaml:"api_key" env:"CLOUDINARY_API_KEY"`
	APISecret string `yaml:"api_secret" env:"CLOUDINARY_API_SECRET"`
	Folder    string `yaml:"folder" env-default:"ecomshop"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	var cfg Config
	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("error reading config: %v", err)
		}
		return &cfg
	}

	// No file: env vars and defaults only.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("error reading config from env: %v", err)
	}
	return &cfg
}
