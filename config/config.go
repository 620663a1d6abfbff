package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string
		Port string
	}
	Database struct {
		Dsn          string
		MaxIdleConns int
		MaxOpenConns int
	}
	Redis struct {
		Addr     string
		DB       int
		Password string
	}
	RabbitMQ struct {
		Url   string
		Queue string
	}
	Jwt struct {
		Secret      string
		ExpireHours int
	}
	Feed struct {
		DefaultPageSize int
		MaxPageSize     int
	}
	Trending struct {
		WindowDays     int
		HalfLifeHours  int
		RefreshMinutes int
		TopN           int
	}
}

var AppConfig *Config

func InitConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	AppConfig = &Config{}

	if err := viper.Unmarshal(AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct: %v", err)
	}

	// 秘钥优先取环境变量，便于部署时不落盘
	if s := getEnvOrDefault("JWT_SECRET", ""); s != "" {
		AppConfig.Jwt.Secret = s
	}
	if AppConfig.Jwt.ExpireHours <= 0 {
		AppConfig.Jwt.ExpireHours = 72
	}

	// 分页与热榜的兜底默认值
	if AppConfig.Feed.DefaultPageSize <= 0 {
		AppConfig.Feed.DefaultPageSize = 10
	}
	if AppConfig.Feed.MaxPageSize <= 0 {
		AppConfig.Feed.MaxPageSize = 50
	}
	if AppConfig.Trending.WindowDays <= 0 {
		AppConfig.Trending.WindowDays = 7
	}
	if AppConfig.Trending.HalfLifeHours <= 0 {
		AppConfig.Trending.HalfLifeHours = 48
	}
	if AppConfig.Trending.RefreshMinutes <= 0 {
		AppConfig.Trending.RefreshMinutes = 5
	}
	if AppConfig.Trending.TopN <= 0 {
		AppConfig.Trending.TopN = 10
	}

	initDB()
	initRedis()
	initRabbit()
}

// getEnvOrDefault 获取环境变量，如果不存在则返回默认值
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
