package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ramanasai/tinyworkout/internal/catalog"
)

type ReminderConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Time     string   `mapstructure:"time"`     // "17:00"
	Workdays []string `mapstructure:"workdays"` // ["Mon","Tue","Wed","Thu","Fri"]
	Holidays []string `mapstructure:"holidays"` // ["2025-01-26", "2025-08-15"]
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty: <data_dir>/tinyworkout.log
	JSON  bool   `mapstructure:"json"`
}

type Config struct {
	Timezone    string             `mapstructure:"timezone"`
	DailyQuota  int                `mapstructure:"daily_quota"`
	MergeWindow time.Duration      `mapstructure:"merge_window"`
	MeterMax    int                `mapstructure:"meter_max"`
	DataDir     string             `mapstructure:"data_dir"`
	Theme       string             `mapstructure:"theme"`
	Reminder    ReminderConfig     `mapstructure:"reminder"`
	Log         LogConfig          `mapstructure:"log"`
	Exercises   []catalog.Exercise `mapstructure:"exercises"`
}

func Default() Config {
	return Config{
		Timezone:    "America/New_York",
		DailyQuota:  10,
		MergeWindow: 10 * time.Minute,
		MeterMax:    30,
		Theme:       "default",
		Reminder: ReminderConfig{
			Enabled:  false,
			Time:     "17:00",
			Workdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			Holidays: []string{},
		},
		Log: LogConfig{Level: "info"},
	}
}

func xdgConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tinyworkout", "config.yaml"), nil
}

func defaultDataDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "tinyworkout")
}

// Load reads the config from the XDG location. A missing file yields defaults.
func Load() (Config, error) {
	path, err := xdgConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. TINYWORKOUT_* environment variables
// override file values.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("TINYWORKOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("timezone", cfg.Timezone)
	v.SetDefault("daily_quota", cfg.DailyQuota)
	v.SetDefault("merge_window", cfg.MergeWindow)
	v.SetDefault("meter_max", cfg.MeterMax)
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.time", cfg.Reminder.Time)
	v.SetDefault("reminder.workdays", cfg.Reminder.Workdays)
	v.SetDefault("reminder.holidays", cfg.Reminder.Holidays)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.json", cfg.Log.JSON)

	if err := v.ReadInConfig(); err != nil { // ok if missing
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("config read %s: %w", path, err)
		}
	}
	// every key has a default, so a zero value receives all of them; decoding
	// over Default() would merge slices element-wise
	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}
	cfg = out

	// "~/..." paths
	if dir, err := homedir.Expand(cfg.DataDir); err == nil {
		cfg.DataDir = dir
	}
	if f, err := homedir.Expand(cfg.Log.File); err == nil {
		cfg.Log.File = f
	}

	// normalize workdays
	for i, d := range cfg.Reminder.Workdays {
		d = strings.ToLower(strings.TrimSpace(d))
		if len(d) >= 3 {
			d = d[:3]
		}
		if d != "" {
			d = strings.ToUpper(d[:1]) + d[1:]
		}
		cfg.Reminder.Workdays[i] = d
	}
	if cfg.DailyQuota < 0 {
		cfg.DailyQuota = 0
	}
	if cfg.MeterMax <= 0 {
		cfg.MeterMax = Default().MeterMax
	}
	return cfg, nil
}

// Location resolves the configured timezone, falling back to the local zone.
func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

// DBPath is the SQLite file inside the data directory.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "tinyworkout.db")
}

// LogPath is the rotating log file.
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, "tinyworkout.log")
}
