package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 启动所需的全部配置。
// 日替ID 的 secret 也放这里显式注入，不在业务代码里读环境。
type Config struct {
	ListenAddr string

	MySQLDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// SecretKey 导出日替ID / persona ID 用的 secret
	SecretKey string

	JWTAccessSecret  string
	JWTRefreshSecret string

	// 首次启动时创建的 superadmin
	AdminUsername string
	AdminPassword string

	// 为空则不发审计事件
	KafkaBrokers []string
	KafkaTopic   string
}

// Load 依次读 .env → config.yaml → 环境变量，环境变量覆盖同名配置。
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("未找到 .env 文件，将跳过加载。")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("mysql.dsn", "user:password@tcp(127.0.0.1:3306)/debt_bbs?charset=utf8mb4&parseTime=True")
	viper.SetDefault("redis.addr", "127.0.0.1:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("secret_key", "default-secret-key")
	viper.SetDefault("jwt.access_secret", "secret-key")
	viper.SetDefault("jwt.refresh_secret", "refresh-key")
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.password", "admin123")
	viper.SetDefault("kafka.brokers", []string{})
	viper.SetDefault("kafka.topic", "moderation-audit")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("未找到配置文件 (config.yaml)，将仅使用默认值和环境变量。")
		} else {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	return &Config{
		ListenAddr:       viper.GetString("listen_addr"),
		MySQLDSN:         viper.GetString("mysql.dsn"),
		RedisAddr:        viper.GetString("redis.addr"),
		RedisPassword:    viper.GetString("redis.password"),
		RedisDB:          viper.GetInt("redis.db"),
		SecretKey:        viper.GetString("secret_key"),
		JWTAccessSecret:  viper.GetString("jwt.access_secret"),
		JWTRefreshSecret: viper.GetString("jwt.refresh_secret"),
		AdminUsername:    viper.GetString("admin.username"),
		AdminPassword:    viper.GetString("admin.password"),
		KafkaBrokers:     viper.GetStringSlice("kafka.brokers"),
		KafkaTopic:       viper.GetString("kafka.topic"),
	}, nil
}
