package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Billing   BillingConfig
	Reporting ReportingConfig
	Otp       OtpConfig
	Notifier  NotifierConfig
	Defaults  DefaultsConfig
}

type ServerConfig struct {
	Port               string
	Env                string
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	URL      string
}

type BillingConfig struct {
	BillPrefix string `mapstructure:"bill_prefix"`
	BillPad    int    `mapstructure:"bill_pad"`
}

type ReportingConfig struct {
	Timezone string
}

type OtpConfig struct {
	Length        int
	ExpiryMinutes int `mapstructure:"expiry_minutes"`
}

// NotifierConfig carries SMS gateway credentials. It is copied into the
// notifier at construction time; nothing reads it as ambient state afterwards.
type NotifierConfig struct {
	GatewayURL string `mapstructure:"gateway_url"`
	APIKey     string `mapstructure:"api_key"`
	SenderID   string `mapstructure:"sender_id"`
}

type DefaultsConfig struct {
	AdminPhone string `mapstructure:"admin_phone"`
	AdminName  string `mapstructure:"admin_name"`
	AdminEmail string `mapstructure:"admin_email"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, checking environment variables: %v", err)
	}

	viper.AutomaticEnv()
	viper.BindEnv("SERVER_PORT", "PORT") // Fallback to PORT if SERVER_PORT is missing
	viper.BindEnv("DATABASE_URL")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DB_DRIVER", "mysql")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 168)
	viper.SetDefault("BILL_PREFIX", "VANS")
	viper.SetDefault("BILL_PAD", 4)
	viper.SetDefault("REPORT_TIMEZONE", "Local")
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("OTP_EXPIRY_MINUTES", 5)

	AppConfig = &Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			Env:                viper.GetString("SERVER_ENV"),
			JWTSecret:          viper.GetString("JWT_SECRET"),
			JWTExpirationHours: viper.GetInt("JWT_EXPIRATION_HOURS"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			URL:      viper.GetString("DATABASE_URL"),
		},
		Billing: BillingConfig{
			BillPrefix: viper.GetString("BILL_PREFIX"),
			BillPad:    viper.GetInt("BILL_PAD"),
		},
		Reporting: ReportingConfig{
			Timezone: viper.GetString("REPORT_TIMEZONE"),
		},
		Otp: OtpConfig{
			Length:        viper.GetInt("OTP_LENGTH"),
			ExpiryMinutes: viper.GetInt("OTP_EXPIRY_MINUTES"),
		},
		Notifier: NotifierConfig{
			GatewayURL: viper.GetString("SMS_GATEWAY_URL"),
			APIKey:     viper.GetString("SMS_API_KEY"),
			SenderID:   viper.GetString("SMS_SENDER_ID"),
		},
		Defaults: DefaultsConfig{
			AdminPhone: viper.GetString("ADMIN_PHONE"),
			AdminName:  viper.GetString("ADMIN_NAME"),
			AdminEmail: viper.GetString("ADMIN_EMAIL"),
		},
	}
}

// ReportLocation resolves the configured reporting timezone, falling back to
// the process-local zone when the name does not parse.
func (c *Config) ReportLocation() *time.Location {
	if c.Reporting.Timezone == "" || c.Reporting.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Reporting.Timezone)
	if err != nil {
		log.Printf("Warning: invalid REPORT_TIMEZONE %q, using local time: %v", c.Reporting.Timezone, err)
		return time.Local
	}
	return loc
}
