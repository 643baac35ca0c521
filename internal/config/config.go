package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings is the fully-resolved configuration handed to the backup core.
type Settings struct {
	DumpCommand string       `mapstructure:"dump-command"`
	LogFile     string       `mapstructure:"logfile"`
	LogLevel    string       `mapstructure:"log_level"`
	DataDir     string       `mapstructure:"datadir"`
	KeepLatest  int          `mapstructure:"keep_latest"`
	Prefix      string       `mapstructure:"prefix"`
	Origin      OriginConfig `mapstructure:"origin"`
	Prune       PruneConfig  `mapstructure:"prune"`
	Lock        LockConfig   `mapstructure:"lock"`
	Notify      NotifyConfig `mapstructure:"notify"`
}

// OriginConfig holds the source server parameters. Empty fields are omitted
// from the dump command.
type OriginConfig struct {
	Host                   string `mapstructure:"host"`
	Username               string `mapstructure:"username"`
	Password               string `mapstructure:"password"`
	Port                   string `mapstructure:"port"`
	Database               string `mapstructure:"database"`
	AuthenticationDatabase string `mapstructure:"authentication-database"`
	ExcludeCollection      string `mapstructure:"exclude-collection"`
}

type PruneConfig struct {
	ContinueOnError bool `mapstructure:"continue_on_error"`
}

type LockConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

var envKeys = []string{
	"dump-command",
	"logfile",
	"log_level",
	"datadir",
	"keep_latest",
	"prefix",
	"origin.host",
	"origin.username",
	"origin.password",
	"origin.port",
	"origin.database",
	"origin.authentication-database",
	"origin.exclude-collection",
	"prune.continue_on_error",
	"lock.enabled",
	"notify.telegram.enabled",
	"notify.telegram.bot_token",
	"notify.telegram.chat_id",
}

func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("mongorotate")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only covers keys viper already knows about, so secrets
	// and paths that may be missing from the file are bound explicitly.
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	v.SetDefault("dump-command", "mongodump")
	v.SetDefault("log_level", "info")
	v.SetDefault("keep_latest", 5)
	v.SetDefault("prefix", "mongodb-backup")
	v.SetDefault("prune.continue_on_error", false)
	v.SetDefault("lock.enabled", true)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Settings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (s *Settings) Validate() error {
	if strings.TrimSpace(s.DumpCommand) == "" {
		return fmt.Errorf("dump-command is required")
	}
	if s.DataDir == "" {
		return fmt.Errorf("datadir is required")
	}
	if s.KeepLatest < 0 {
		return fmt.Errorf("keep_latest must be >= 0, got %d", s.KeepLatest)
	}

	tg := s.Notify.Telegram
	if tg.Enabled {
		if tg.BotToken == "" {
			return fmt.Errorf("notify.telegram: bot_token is required when enabled")
		}
		if tg.ChatID == "" {
			return fmt.Errorf("notify.telegram: chat_id is required when enabled")
		}
	}

	return nil
}

// IsEmpty reports whether no origin parameter is set at all.
func (o OriginConfig) IsEmpty() bool {
	return o == OriginConfig{}
}
