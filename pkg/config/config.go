package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type MongoConfig struct {
	Host       string `yaml:"host"`
	DBName     string `yaml:"dbname"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	AuthSource string `yaml:"authSource"`
}

// GatherConfig 内容补抓与提取扫描
type GatherConfig struct {
	IntervalMinutes int    `yaml:"intervalMinutes"`
	UserAgent       string `yaml:"userAgent"`
	Cookie          string `yaml:"cookie"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig 日志文件输出，path 为空只写 stdout
type LogConfig struct {
	Path string `yaml:"path"`
}

type Config struct {
	Mongo  MongoConfig  `yaml:"mongo"`
	Gather GatherConfig `yaml:"gather"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
