package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmigpin/dragsource/internal/logging"
)

// Wires the command flags into v with the config file search order and
// the DRAGSOURCE_* env var prefix.
//
// Precedence (lowest to highest): defaults, config file, env vars, flags.
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("dragsource")
		v.SetConfigType("toml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "dragsource"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("DRAGSOURCE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "info", "log level: debug|info|warn|error")
}

func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// Configures slog from the logging keys. The level is kept in lv so a
// config reload can change it.
func setupLogging(v *viper.Viper, lv *slog.LevelVar) *slog.Logger {
	lv.Set(logging.ParseLevel(v.GetString("log-level")))
	format := logging.ParseFormat(v.GetString("log-format"))
	return logging.Setup(format, lv)
}

// Logs config file changes and applies a new log level.
func watchConfig(v *viper.Viper, lv *slog.LevelVar, logger *slog.Logger) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(ev fsnotify.Event) {
		if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
			return
		}
		lv.Set(logging.ParseLevel(v.GetString("log-level")))
		logger.Info("config reloaded", "file", ev.Name, "log-level", lv.Level())
	})
	v.WatchConfig()
}

//----------

// Parses "WxH".
func parseSize(s string) (image.Point, error) {
	var p image.Point
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &p.X, &p.Y); err != nil {
		return p, fmt.Errorf("bad size %q: %w", s, err)
	}
	if p.X <= 0 || p.Y <= 0 {
		return p, fmt.Errorf("bad size %q", s)
	}
	return p, nil
}
