package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppPort     string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// время жизни кэша таблицы рекордов
	LeaderboardCacheTTL time.Duration

	AllowedOrigins []string

	LogLevel string
	LogJSON  bool

	GameConfigPath string
	Game           GameConfig
}

// настройки из YAML файла (GAME_CONFIG)
type GameConfig struct {
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Play        PlayConfig        `yaml:"play"`
}

type LeaderboardConfig struct {
	Limit         int `yaml:"limit"`
	NameMaxLength int `yaml:"name_max_length"`
}

type PlayConfig struct {
	// период кадров, которыми ws-сессия двигает часы игры
	FrameInterval time.Duration `yaml:"frame_interval"`
}

func DefaultGameConfig() GameConfig {
	return GameConfig{
		Leaderboard: LeaderboardConfig{Limit: 10, NameMaxLength: 32},
		Play:        PlayConfig{FrameInterval: 16 * time.Millisecond},
	}
}

// Load читает .env (если есть), переменные окружения и файл настроек игры
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogJSON:        os.Getenv("LOG_FORMAT") == "json",
		GameConfigPath: getEnv("GAME_CONFIG", "config.yaml"),
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	ttl, err := time.ParseDuration(getEnv("LEADERBOARD_CACHE_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEADERBOARD_CACHE_TTL: %w", err)
	}
	cfg.LeaderboardCacheTTL = ttl

	game, err := LoadGameConfig(cfg.GameConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Game = game

	return cfg, nil
}

// LoadGameConfig читает YAML поверх значений по умолчанию.
// Отсутствующий файл не ошибка
func LoadGameConfig(path string) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read game config: %w", err)
	}
	return ParseGameConfig(data)
}

func ParseGameConfig(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse game config: %w", err)
	}

	if cfg.Leaderboard.Limit <= 0 {
		return cfg, errors.New("leaderboard.limit must be positive")
	}
	if cfg.Leaderboard.NameMaxLength <= 0 {
		return cfg, errors.New("leaderboard.name_max_length must be positive")
	}
	if cfg.Play.FrameInterval <= 0 {
		return cfg, errors.New("play.frame_interval must be positive")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
