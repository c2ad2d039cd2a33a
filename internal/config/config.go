package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config 服务运行配置
type Config struct {
	Addr        string
	CatalogFile string
	Env         string
}

// Load 读取 .env（若存在）和环境变量
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}

	return Config{
		Addr:        GetEnv("ADDR", ":9090"),
		CatalogFile: GetEnv("CATALOG_FILE", ""),
		Env:         GetEnv("ENV", "development"),
	}, nil
}

// GetEnv 返回环境变量，未设置或为空时返回默认值
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// NewLogger 生产环境使用 JSON 日志，其他环境使用开发模式日志
func (c Config) NewLogger() (*zap.Logger, error) {
	if c.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
