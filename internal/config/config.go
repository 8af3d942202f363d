// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the settings of the gamm-query command from a TOML
// file and GAMMQUERY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/blinklabs-io/gammquery/channel"
	"github.com/blinklabs-io/gammquery/dispatch"
	"github.com/blinklabs-io/gammquery/packet"
	"github.com/spf13/viper"
)

const (
	configName = "gammquery"
	configType = "toml"
	envPrefix  = "GAMMQUERY"

	keyChannelVersion  = "channel.version"
	keyChannelOrdering = "channel.ordering"
	keyDefaultTimeout  = "packet.default_timeout"
	keyPacketFormat    = "packet.format"
	keyStorePath       = "store.path"
	keyLogLevel        = "log.level"

	DefaultStorePath = "gammquery-store.toml"
	DefaultLogLevel  = "info"
)

// Config holds the resolved settings
type Config struct {
	ChannelVersion  string
	ChannelOrdering string
	DefaultTimeout  uint64
	PacketFormat    string
	StorePath       string
	LogLevel        string
}

// Load reads the configuration. When configFile is empty, gammquery.toml is
// looked up in the current directory; a missing file is not an error.
// Environment variables override file values, e.g. GAMMQUERY_STORE_PATH.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetDefault(keyChannelVersion, channel.DefaultVersion)
	v.SetDefault(keyChannelOrdering, channel.DefaultOrder.String())
	v.SetDefault(keyDefaultTimeout, dispatch.DefaultPacketLifetime)
	v.SetDefault(keyPacketFormat, packet.FormatPath.String())
	v.SetDefault(keyStorePath, DefaultStorePath)
	v.SetDefault(keyLogLevel, DefaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		ChannelVersion:  v.GetString(keyChannelVersion),
		ChannelOrdering: v.GetString(keyChannelOrdering),
		DefaultTimeout:  v.GetUint64(keyDefaultTimeout),
		PacketFormat:    v.GetString(keyPacketFormat),
		StorePath:       v.GetString(keyStorePath),
		LogLevel:        v.GetString(keyLogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting can be converted
func (c *Config) Validate() error {
	if c.ChannelVersion == "" {
		return errors.New("channel.version must not be empty")
	}
	if c.StorePath == "" {
		return errors.New("store.path must not be empty")
	}
	if c.DefaultTimeout == 0 {
		return errors.New("packet.default_timeout must be positive")
	}
	if _, err := c.Order(); err != nil {
		return err
	}
	if _, err := c.Format(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Order returns the configured channel ordering
func (c *Config) Order() (channel.Order, error) {
	order, err := channel.ParseOrder(c.ChannelOrdering)
	if err != nil {
		return channel.OrderNone, fmt.Errorf("channel.ordering: %w", err)
	}
	return order, nil
}

// Format returns the configured envelope format
func (c *Config) Format() (packet.Format, error) {
	format, err := packet.ParseFormat(c.PacketFormat)
	if err != nil {
		return packet.FormatPath, fmt.Errorf("packet.format: %w", err)
	}
	return format, nil
}

// Level returns the configured log level
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
