// internal/config/config.go

// Package config 載入 YAML 設定檔並套用預設值。
// 設定檔不存在時直接使用預設值，讓第一次啟動不需要任何檔案。
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"mcgymmy/internal/model"
)

// Config 為整個程式的設定。
type Config struct {
	Storage Storage      `yaml:"storage"`
	Server  Server       `yaml:"server"`
	Log     Log          `yaml:"log"`
	History model.Policy `yaml:"history"`
}

// Storage 選擇持久化後端。
type Storage struct {
	Backend   string `yaml:"backend" validate:"oneof=json badger"`
	DataFile  string `yaml:"data_file" validate:"required_if=Backend json"`
	BadgerDir string `yaml:"badger_dir" validate:"required_if=Backend badger"`
}

// Server 為 HTTP 服務設定。
type Server struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

// Log 控制 slog 輸出。
type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default 回傳預設設定。
func Default() Config {
	return Config{
		Storage: Storage{Backend: "json", DataFile: "data/mcgymmy.json", BadgerDir: "data/badger"},
		Server:  Server{Addr: ":8080"},
		Log:     Log{Level: "info", Format: "text"},
		History: model.Policy{Limit: 100},
	}
}

var validate = validator.New()

// Load 讀取 path 並覆蓋預設值；檔案不存在時回傳預設值。
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, cfg.Validate()
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate 檢查欄位值。
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// NewLogger 依設定建立 slog.Logger。
func (l Log) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.level()}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (l Log) level() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
