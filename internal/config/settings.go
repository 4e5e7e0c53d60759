package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Keys lists every setting the tool reads, in display order.
var Keys = []string{
	"api_url",
	"session.min",
	"session.max",
	"layout.anchor_row",
	"layout.anchor_col",
	"layout.column_scale",
	"palette.course",
	"palette.section",
	"palette.lesson",
	"palette.unused",
}

// Set sets a config value and saves to disk. The value is rejected, and
// nothing is written, if the resulting configuration does not validate.
func Set(key, value string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys, ", "))
	}
	setDefaults()
	prev := viper.Get(key)
	viper.Set(key, value)

	var cfg Config
	err := viper.Unmarshal(&cfg)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		viper.Set(key, prev)
		return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
	return SaveConfig()
}

// Get retrieves a config value.
func Get(key string) string {
	return viper.GetString(key)
}

// ResetConfig deletes the config file and restores defaults.
func ResetConfig() error {
	path := ConfigPath()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete config: %w", err)
	}
	viper.Reset()
	setDefaults()
	return nil
}

// SaveConfig writes the current config to ~/.coursegrid/config.yaml.
func SaveConfig() error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}

	os.Chmod(path, 0600)
	return nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// ToEnv returns all config values as a map of env var name -> value.
func ToEnv() map[string]string {
	env := make(map[string]string, len(Keys))
	for _, key := range Keys {
		if v := viper.GetString(key); v != "" {
			env[EnvName(key)] = v
		}
	}
	return env
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// ShowConfig returns a formatted string of the current configuration.
func ShowConfig() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Config: %s\n", ConfigPath()))

	groups := map[string][]string{}
	var order []string
	for _, key := range Keys {
		group, name := "general", key
		if i := strings.IndexByte(key, '.'); i >= 0 {
			group, name = key[:i], key[i+1:]
		}
		if _, ok := groups[group]; !ok {
			order = append(order, group)
		}
		groups[group] = append(groups[group], name)
	}

	for _, group := range order {
		sb.WriteString("\n" + group + "\n")
		names := groups[group]
		width := 0
		for _, n := range names {
			if len(n) > width {
				width = len(n)
			}
		}
		for _, n := range names {
			key := n
			if group != "general" {
				key = group + "." + n
			}
			sb.WriteString(fmt.Sprintf("  %-*s  %s\n", width+1, n+":", viper.GetString(key)))
		}
	}

	return sb.String()
}

func isKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
