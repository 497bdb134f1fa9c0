package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	ModeTUI  = "tui"
	ModeHTTP = "http"

	xdgConfigFile = "tictactoe-hotseat/config.yml"
)

var ErrUnknownMode = errors.New("unknown mode")

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode     string `yaml:"mode" env:"MODE" env-default:"tui"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Cells    int    `yaml:"cells" env:"CELLS" env-default:"9"`
	Redis    Redis  `yaml:"redis"`
}

type Redis struct {
	Enabled       bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host          string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port          string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	ChannelPrefix string `yaml:"channel-prefix" env:"REDIS_CHANNEL_PREFIX" env-default:"tictactoe:events"`
}

// MustLoad - load configuration from the given yml file, or from the environment
// when the file does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); path != "" && statErr == nil {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ResolvePath picks the config file to load: the explicit path if given,
// then the working directory, then the XDG config directories.
func ResolvePath(explicit, workDir string) string {
	if explicit != "" {
		return explicit
	}

	local := filepath.Join(workDir, "config.yml")
	if _, err := os.Stat(local); err == nil {
		return local
	}

	if found, err := xdg.SearchConfigFile(xdgConfigFile); err == nil {
		return found
	}

	return ""
}

func (that *Config) Validate() error {
	switch that.Mode {
	case ModeTUI, ModeHTTP:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, that.Mode)
	}

	if _, err := entity.ShapeForCellCount(that.Cells); err != nil {
		return fmt.Errorf("invalid cells: %w", err)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
