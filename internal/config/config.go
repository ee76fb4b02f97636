package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBPort            string
	AppPort           string
	AppEnv            string
	PaystackSecretKey string
	JWTSecretKey      string
	Currency          string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		AppPort:           os.Getenv("APP_PORT"),
		AppEnv:            os.Getenv("APP_ENV"),
		PaystackSecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		JWTSecretKey:      os.Getenv("SECRET_KEY"),
		Currency:          os.Getenv("CURRENCY"),
	}

	if cfg.Currency == "" {
		// single fixed currency for the whole checkout flow
		cfg.Currency = "GHS"
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}
