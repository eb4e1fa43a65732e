package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `storage:
  backend: "sqlite"
  path: "shop.db"
scheduler:
  default_daily_capacity: 10
  work_day_hours: 7.5
  horizon_days: 60
metrics:
  sinks:
    - type: "nop"
  prometheus_port: ":9090"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "shop.db", cfg.Storage.Path)
	assert.Equal(t, 10.0, cfg.Scheduler.DefaultDailyCapacity)
	assert.Equal(t, 7.5, cfg.Scheduler.WorkDayHours)
	assert.Equal(t, 60, cfg.Scheduler.HorizonDays)
	require.Len(t, cfg.Metrics.Sinks, 1)
	assert.Equal(t, "nop", cfg.Metrics.Sinks[0].Type)
	assert.Equal(t, ":9090", cfg.Metrics.PrometheusPort)
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"storage": {"backend": "json", "path": "data"}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Storage.Backend)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Storage.Backend)
	assert.Equal(t, "data", cfg.Storage.Path)
	assert.Equal(t, 90, cfg.Scheduler.HorizonDays)
	assert.Equal(t, 8.0, cfg.Scheduler.DefaultDailyCapacity)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scheduler:\n  horizon_days: 30\n"), 0o644))

	t.Setenv("K_SCHEDULER__HORIZON_DAYS", "45")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.Scheduler.HorizonDays)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: \"redis\"\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "json", cfg.Storage.Backend)
	assert.Equal(t, 90, cfg.Scheduler.HorizonDays)
	require.NoError(t, cfg.Storage.Validate())
}
