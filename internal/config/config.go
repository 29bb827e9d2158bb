// Package config loads the daemon's configuration from its TOML file,
// the ARMORYD_* environment and command line flags, in ascending
// precedence.
package config

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/mutker/armoryd/internal/battlenet"
	"codeberg.org/mutker/armoryd/internal/errors"
)

const (
	DefaultInterval      = 300
	MinInterval          = 60
	DefaultEntityDelay   = 100
	DefaultThrottleDelay = 60
	DefaultSeasonID      = 12
	DefaultExpansion     = "The War Within"
	DefaultLogLevel      = "info"
	DefaultListen        = "127.0.0.1:9380"
	DefaultDatabase      = "armoryd.db"

	// EnvConfigPath points Load at an explicit config file
	EnvConfigPath = "ARMORYD_CONFIG"

	envPrefix = "ARMORYD"
)

// Character selects one character to track
type Character struct {
	Realm string `mapstructure:"realm"`
	Name  string `mapstructure:"name"`
}

// Features toggles the optional metric categories. Basic character
// metrics are always collected.
type Features struct {
	ServerStatus bool `mapstructure:"server_status"`
	PvP          bool `mapstructure:"pvp"`
	Raids        bool `mapstructure:"raids"`
	MythicPlus   bool `mapstructure:"mythic_plus"`
}

type Config struct {
	Region       string      `mapstructure:"region"`
	ClientID     string      `mapstructure:"client_id"`
	ClientSecret string      `mapstructure:"client_secret"`
	Characters   []Character `mapstructure:"characters"`
	Features     Features    `mapstructure:"features"`

	Interval      int    `mapstructure:"interval"`
	EntityDelay   int    `mapstructure:"entity_delay"`
	ThrottleDelay int    `mapstructure:"throttle_delay"`
	SeasonID      int    `mapstructure:"season"`
	Expansion     string `mapstructure:"expansion"`

	LogLevel  string `mapstructure:"log_level"`
	Listen    string `mapstructure:"listen"`
	Telemetry bool   `mapstructure:"telemetry"`
	Database  string `mapstructure:"database"`
	Once      bool   `mapstructure:"once"`
}

func Load() (*Config, error) {
	errFactory := errors.New()

	flags := pflag.NewFlagSet("armoryd", pflag.ContinueOnError)
	flags.String("region", "", "API region (us, eu, kr, tw, cn)")
	flags.Int("interval", 0, "Seconds between poll cycles")
	flags.String("listen", "", "Address for the status and metrics endpoints")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.Bool("telemetry", false, "Enable snapshot history storage")
	flags.String("database", "", "Path to the snapshot history database")
	flags.Bool("once", false, "Run one cycle, print the snapshot as JSON and exit")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(ErrBindFlags, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// An explicit config path must load; the default search is optional
	if path := os.Getenv(EnvConfigPath); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("armoryd")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/armoryd")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errFactory.Wrap(ErrReadConfig, err)
		}
	}

	// Flags set on the command line override file and environment
	flags.Visit(func(f *pflag.Flag) {
		v.Set(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
	})

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("region", "us")
	v.SetDefault("client_id", "")
	v.SetDefault("client_secret", "")
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("entity_delay", DefaultEntityDelay)
	v.SetDefault("throttle_delay", DefaultThrottleDelay)
	v.SetDefault("season", DefaultSeasonID)
	v.SetDefault("expansion", DefaultExpansion)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("listen", DefaultListen)
	v.SetDefault("telemetry", false)
	v.SetDefault("database", DefaultDatabase)
	v.SetDefault("once", false)
	v.SetDefault("features.server_status", true)
	v.SetDefault("features.pvp", true)
	v.SetDefault("features.raids", true)
	v.SetDefault("features.mythic_plus", true)
}

// Validate checks the loaded configuration against the rules the
// daemon depends on
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !battlenet.Region(c.Region).Valid() {
		return errFactory.WithData(ErrInvalidRegion, struct {
			Region string
		}{c.Region})
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return errFactory.New(ErrMissingCredentials)
	}
	if len(c.Characters) == 0 {
		return errFactory.New(ErrNoCharacters)
	}
	for _, character := range c.Characters {
		if character.Realm == "" || character.Name == "" {
			return errFactory.WithMessage(ErrInvalidConfig, "character entries need realm and name")
		}
	}
	if c.Interval < MinInterval {
		return errFactory.WithData(ErrInvalidInterval, struct {
			Interval int
			Min      int
		}{c.Interval, MinInterval})
	}
	if c.EntityDelay < 0 {
		return errFactory.WithMessage(ErrInvalidConfig, "entity_delay must not be negative")
	}
	if c.ThrottleDelay < 0 {
		return errFactory.WithMessage(ErrInvalidConfig, "throttle_delay must not be negative")
	}
	if c.Expansion == "" {
		return errFactory.WithMessage(ErrInvalidConfig, "expansion must not be empty")
	}
	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(ErrInvalidLogLevel, struct {
			Level string
		}{c.LogLevel})
	}
	if c.Telemetry && c.Database == "" {
		return errFactory.WithMessage(ErrInvalidConfig, "telemetry needs a database path")
	}

	return nil
}
