// Package config loads the demo server's process configuration from a YAML
// file and environment variables via viper, the way dburkart/fossil's
// config layer is built.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/binschema/binschema/transport"
)

// Config holds everything the serve command needs to start a transport.Server.
type Config struct {
	ListenNetwork  string `mapstructure:"listen_network"`
	ListenAddress  string `mapstructure:"listen_address"`
	MaxMessageSize uint32 `mapstructure:"max_message_size"`
	OverflowPolicy string `mapstructure:"overflow_policy"`
	MetricsAddress string `mapstructure:"metrics_address"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() Config {
	return Config{
		ListenNetwork:  "tcp",
		ListenAddress:  "127.0.0.1:9321",
		MaxMessageSize: 1 << 20,
		OverflowPolicy: "discard",
		MetricsAddress: "127.0.0.1:9322",
	}
}

// Load reads configuration from path (if non-empty) and the BINSCHEMA_*
// environment variables, falling back to Default for anything unset.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("BINSCHEMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen_network", cfg.ListenNetwork)
	v.SetDefault("listen_address", cfg.ListenAddress)
	v.SetDefault("max_message_size", cfg.MaxMessageSize)
	v.SetDefault("overflow_policy", cfg.OverflowPolicy)
	v.SetDefault("metrics_address", cfg.MetricsAddress)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// OverflowPolicyValue resolves the configured policy name to its
// transport.MessageOverflowPolicy value.
func (c Config) OverflowPolicyValue() (transport.MessageOverflowPolicy, error) {
	switch strings.ToLower(c.OverflowPolicy) {
	case "discard":
		return transport.MessageOverflowDiscard, nil
	case "terminate":
		return transport.MessageOverflowTerminate, nil
	default:
		return 0, fmt.Errorf("config: unknown overflow_policy %q", c.OverflowPolicy)
	}
}
