package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	STORE_PATH string
	HTTP_ADDR  string
	LOG_LEVEL  string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		STORE_PATH: os.Getenv("STORE_PATH"),
		HTTP_ADDR:  os.Getenv("HTTP_ADDR"),
		LOG_LEVEL:  os.Getenv("LOG_LEVEL"),
	}

	if config.HTTP_ADDR == "" {
		config.HTTP_ADDR = ":8080"
	}

	return config, nil
}
