package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultFQBN          = "arduino:avr:uno"
	DefaultHost          = "127.0.0.1"
	DefaultPort          = 5000
	DefaultDBPath        = "agent.db"
	DefaultBundleDir     = "bin"
	DefaultWatchInterval = 2 * time.Second
	DefaultWriteTimeout  = 10 * time.Minute

	envPrefix = "AGENT"
)

// Config holds all agent configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Board     BoardConfig     `mapstructure:"board"`
	Serial    SerialConfig    `mapstructure:"serial"`
	Toolchain ToolchainConfig `mapstructure:"toolchain"`
	Workspace WorkspaceConfig `mapstructure:"workspace"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type BoardConfig struct {
	FQBN string `mapstructure:"fqbn"`
}

type SerialConfig struct {
	Keywords      []string      `mapstructure:"keywords"`
	WatchInterval time.Duration `mapstructure:"watch_interval"` // 0 disables the watcher
}

type ToolchainConfig struct {
	Path      string        `mapstructure:"path"`       // explicit arduino-cli path
	BundleDir string        `mapstructure:"bundle_dir"` // directory shipped next to the agent
	Timeout   time.Duration `mapstructure:"timeout"`    // per invocation, 0 means none
}

type WorkspaceConfig struct {
	BaseDir string `mapstructure:"base_dir"` // empty: OS temp dir
}

// Addr returns host:port for the HTTP listener.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// NewFlagSet defines the command line accepted by the agent binary.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to a config file (default: configs/config.yml if present)")
	fs.Bool("version", false, "print the agent version and exit")
	fs.String("host", DefaultHost, "address to listen on")
	fs.Int("port", DefaultPort, "port to listen on")
	fs.String("log-level", "info", "debug | info | warn | error")
	fs.String("fqbn", DefaultFQBN, "default board profile")
	return fs
}

// Load reads configuration.
// Order: defaults → config file → .env / AGENT_* environment → changed flags.
func Load(fs *pflag.FlagSet) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := ""
	if fs != nil {
		explicit, _ = fs.GetString("config")
		for key, flag := range map[string]string{
			"server.host": "host",
			"server.port": "port",
			"log.level":   "log-level",
			"board.fqbn":  "fqbn",
		} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.write_timeout", DefaultWriteTimeout)
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", DefaultDBPath)
	v.SetDefault("board.fqbn", DefaultFQBN)
	v.SetDefault("serial.keywords", []string{"arduino", "usb", "ttyacm", "usbmodem"})
	v.SetDefault("serial.watch_interval", DefaultWatchInterval)
	v.SetDefault("toolchain.path", "")
	v.SetDefault("toolchain.bundle_dir", DefaultBundleDir)
	v.SetDefault("toolchain.timeout", time.Duration(0))
	v.SetDefault("workspace.base_dir", "")
}

// Validate rejects configurations the agent cannot serve with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Board.FQBN) == "" {
		return errors.New("config: board.fqbn must not be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if c.Serial.WatchInterval < 0 {
		return errors.New("config: serial.watch_interval must be >= 0")
	}
	if c.Toolchain.Timeout < 0 {
		return errors.New("config: toolchain.timeout must be >= 0")
	}
	return nil
}
