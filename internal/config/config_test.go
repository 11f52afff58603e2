package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Timezone, cfg.Timezone)
	assert.Equal(t, def.DailyQuota, cfg.DailyQuota)
	assert.Equal(t, def.MergeWindow, cfg.MergeWindow)
	assert.Equal(t, def.Reminder.Workdays, cfg.Reminder.Workdays)
	assert.NotEmpty(t, cfg.DataDir)
	assert.Empty(t, cfg.Exercises)
	assert.Equal(t, "America/New_York", cfg.Location().String())
}

func TestLoadFile_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
timezone: Europe/Berlin
daily_quota: 5
merge_window: 15m
data_dir: ` + dir + `
reminder:
  enabled: true
  time: "07:30"
  workdays: [monday, TUE]
exercises:
  - id: lunges
    title: 12 lunges
  - id: kettlebell
    title: 10 reps kettlebell
    has_note: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
	assert.Equal(t, 5, cfg.DailyQuota)
	assert.Equal(t, 15*time.Minute, cfg.MergeWindow)
	assert.Equal(t, filepath.Join(dir, "tinyworkout.db"), cfg.DBPath())
	assert.Equal(t, filepath.Join(dir, "tinyworkout.log"), cfg.LogPath())
	assert.True(t, cfg.Reminder.Enabled)
	assert.Equal(t, []string{"Mon", "Tue"}, cfg.Reminder.Workdays)
	require.Len(t, cfg.Exercises, 2)
	assert.Equal(t, "12 lunges", cfg.Exercises[0].Title)
	assert.True(t, cfg.Exercises[1].HasNote)
}

func TestLoadFile_EnvOverride(t *testing.T) {
	t.Setenv("TINYWORKOUT_DAILY_QUOTA", "3")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.DailyQuota)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: [unclosed"), 0o644))
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLocation_Fallback(t *testing.T) {
	cfg := Default()
	cfg.Timezone = "Mars/Olympus"
	assert.Equal(t, time.Local, cfg.Location())
}

func TestLoadFile_ExpandsHome(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: ~/tw\nlog:\n  file: ~/tw/debug.log\n"), 0o644))

	home, err := homedir.Dir()
	require.NoError(t, err)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "tw"), cfg.DataDir)
	assert.Equal(t, filepath.Join(home, "tw", "debug.log"), cfg.LogPath())
}
