package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// BattleServer holds all configuration for the battle session service.
type BattleServer struct {
	// Network
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Database
	Database DatabaseConfig `yaml:"database"`
	// UseMemoryStore keeps sessions in memory instead of PostgreSQL.
	UseMemoryStore bool `yaml:"use_memory_store"`

	Rewards Rewards `yaml:"rewards"`
}

// Addr returns host:port for the HTTP listener.
func (s BattleServer) Addr() string {
	return fmt.Sprintf("%s:%d", s.BindAddress, s.Port)
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Rewards controls what a completed battle yields.
type Rewards struct {
	BaseExp       int     `yaml:"base_exp"`
	DamagePerExp  int     `yaml:"damage_per_exp"` // 1 exp per N damage dealt
	WinMultiplier float64 `yaml:"win_multiplier"`
	WinCoins      int     `yaml:"win_coins"`
	LossCoins     int     `yaml:"loss_coins"`
}

// DefaultRewards returns the stock reward table.
func DefaultRewards() Rewards {
	return Rewards{
		BaseExp:       10,
		DamagePerExp:  5,
		WinMultiplier: 2.0,
		WinCoins:      50,
		LossCoins:     10,
	}
}

// DefaultBattleServer returns BattleServer config with sensible defaults.
func DefaultBattleServer() BattleServer {
	return BattleServer{
		BindAddress:     "0.0.0.0",
		Port:            8088,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		LogLevel:        "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "monbattle",
			Password: "monbattle",
			DBName:   "monbattle",
			SSLMode:  "disable",
		},
		Rewards: DefaultRewards(),
	}
}

// Client holds configuration for the battle client (cmd/battlesim).
type Client struct {
	ServerURL       string        `yaml:"server_url"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	CompleteTimeout time.Duration `yaml:"complete_timeout"`
	OpponentDelay   time.Duration `yaml:"opponent_delay"`

	RosterPath string `yaml:"roster_path"`
	PlayerID   string `yaml:"player_id"`
	OpponentID string `yaml:"opponent_id"`
	Seed       uint64 `yaml:"seed"` // 0 = random
	LogLevel   string `yaml:"log_level"`
}

// DefaultClient returns Client config with sensible defaults.
func DefaultClient() Client {
	return Client{
		ServerURL:       "http://127.0.0.1:8088",
		RequestTimeout:  5 * time.Second,
		CompleteTimeout: 10 * time.Second,
		OpponentDelay:   1200 * time.Millisecond,
		RosterPath:      "config/roster.yaml",
		LogLevel:        "info",
	}
}

// LoadBattleServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadBattleServer(path string) (BattleServer, error) {
	cfg := DefaultBattleServer()
	if err := load(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadClient loads client config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadClient(path string) (Client, error) {
	cfg := DefaultClient()
	if err := load(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// ParseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
