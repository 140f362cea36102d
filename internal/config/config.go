package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string `mapstructure:"PORT"`
	DatabasePath       string `mapstructure:"DATABASE_PATH"`
	PublicBaseURL      string `mapstructure:"PUBLIC_BASE_URL"`
	FrontendURL        string `mapstructure:"FRONTEND_URL"`
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	UploadDir          string `mapstructure:"UPLOAD_DIR"`
	PaymentAPIURL      string `mapstructure:"PAYMENT_API_URL"`
	PaymentAPIKey      string `mapstructure:"PAYMENT_API_KEY"`
	DiscordBotToken    string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordOpsChannel  string `mapstructure:"DISCORD_OPS_CHANNEL"`
	EnableCORS         bool   `mapstructure:"ENABLE_CORS"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "invitarte.db")
	viper.SetDefault("PUBLIC_BASE_URL", "http://127.0.0.1:8080")
	viper.SetDefault("FRONTEND_URL", "http://127.0.0.1:4000")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "http://127.0.0.1:8080/auth/google/callback")
	viper.SetDefault("UPLOAD_DIR", "uploads")

	viper.BindEnv("GOOGLE_CLIENT_ID")
	viper.BindEnv("GOOGLE_CLIENT_SECRET")
	viper.BindEnv("GOOGLE_REDIRECT_URL")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("PUBLIC_BASE_URL")
	viper.BindEnv("FRONTEND_URL")
	viper.BindEnv("UPLOAD_DIR")
	viper.BindEnv("PAYMENT_API_URL")
	viper.BindEnv("PAYMENT_API_KEY")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_OPS_CHANNEL")
	viper.BindEnv("ENABLE_CORS")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
