package repl

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultPrompt   = "> "
	DefaultQuit     = "quit"
	DefaultFormat   = FormatDebug
	DefaultLogLevel = "info"
)

// Config controls the driver. Values come from, in increasing priority,
// defaults, a config file, SPUTTER_* environment variables and flags.
type Config struct {
	Prompt     string
	Quit       string
	Format     string
	ShowParsed bool
	History    string
	LogLevel   string
}

// RegisterFlags adds the driver flags to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default is sputter.{yaml,toml,json} in . or $HOME/.config/sputter)")
	flags.String("prompt", DefaultPrompt, "prompt shown in terminal mode")
	flags.String("quit", DefaultQuit, "line that ends the session")
	flags.String("format", DefaultFormat, "output format: sexpr, debug or json")
	flags.Bool("show-parsed", true, "print the parsed tree before evaluating")
	flags.String("history", "", "history file for terminal mode")
	flags.String("log-level", DefaultLogLevel, "log level: debug, info, warn or error")
}

// LoadConfig resolves the configuration. flags may be nil.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("prompt", DefaultPrompt)
	v.SetDefault("quit", DefaultQuit)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("show-parsed", true)
	v.SetDefault("history", "")
	v.SetDefault("log-level", DefaultLogLevel)

	v.SetEnvPrefix("sputter")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, errors.Wrap(err, "bind flags")
		}
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("sputter")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/sputter")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "read config")
		}
	}

	cfg := &Config{
		Prompt:     v.GetString("prompt"),
		Quit:       v.GetString("quit"),
		Format:     v.GetString("format"),
		ShowParsed: v.GetBool("show-parsed"),
		History:    v.GetString("history"),
		LogLevel:   v.GetString("log-level"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Format {
	case FormatSexpr, FormatDebug, FormatJSON:
	default:
		return errors.Errorf("unknown format %q", c.Format)
	}
	if strings.TrimSpace(c.Quit) == "" {
		return errors.New("quit word must not be empty")
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Prompt:     DefaultPrompt,
		Quit:       DefaultQuit,
		Format:     DefaultFormat,
		ShowParsed: true,
		LogLevel:   DefaultLogLevel,
	}
}
