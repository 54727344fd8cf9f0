package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Studio working window, minutes from midnight. Slot granularity is hourly.
	StudioOpenMinute  int `mapstructure:"STUDIO_OPEN_MINUTE"`
	StudioCloseMinute int `mapstructure:"STUDIO_CLOSE_MINUTE"`

	// Hours before a session that the reminder task fires.
	ReminderLeadHours int `mapstructure:"REMINDER_LEAD_HOURS"`

	// Seed values for the booking policy when no record exists yet.
	DefaultMaxBookingsPerDay       int `mapstructure:"DEFAULT_MAX_BOOKINGS_PER_DAY"`
	DefaultMinAdvanceBookingDays   int `mapstructure:"DEFAULT_MIN_ADVANCE_BOOKING_DAYS"`
	DefaultMaxAdvanceBookingDays   int `mapstructure:"DEFAULT_MAX_ADVANCE_BOOKING_DAYS"`
	DefaultCancellationWindowHours int `mapstructure:"DEFAULT_CANCELLATION_WINDOW_HOURS"`
	DefaultRescheduleWindowHours   int `mapstructure:"DEFAULT_RESCHEDULE_WINDOW_HOURS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "lumiere")
	viper.SetDefault("STUDIO_OPEN_MINUTE", 540)   // 09:00
	viper.SetDefault("STUDIO_CLOSE_MINUTE", 1080) // 18:00
	viper.SetDefault("REMINDER_LEAD_HOURS", 24)
	viper.SetDefault("DEFAULT_MAX_BOOKINGS_PER_DAY", 5)
	viper.SetDefault("DEFAULT_MIN_ADVANCE_BOOKING_DAYS", 1)
	viper.SetDefault("DEFAULT_MAX_ADVANCE_BOOKING_DAYS", 60)
	viper.SetDefault("DEFAULT_CANCELLATION_WINDOW_HOURS", 24)
	viper.SetDefault("DEFAULT_RESCHEDULE_WINDOW_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
