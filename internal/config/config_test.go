package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.Equal(t, "S0_D_Dist", cfg.Survey.Columns.District)
	assert.Equal(t, "S0_C_Prov", cfg.Survey.Columns.Province)
	assert.Equal(t, "Stunting", cfg.Survey.Columns.Stunting)
	assert.Equal(t, "Wasting", cfg.Survey.Columns.Wasting)
	assert.Equal(t, "Underweight", cfg.Survey.Columns.Underweight)

	assert.Equal(t, []string{"NAME_2", "NAME", "name"}, cfg.Boundary.NameFields)

	assert.InDelta(t, 0.6, cfg.Score.StuntingWeight, 0.001)
	assert.InDelta(t, 0.3, cfg.Score.WastingWeight, 0.001)
	assert.InDelta(t, 0.1, cfg.Score.UnderweightWeight, 0.001)
	assert.InDelta(t, 40.0, cfg.Score.SevereMin, 0.001)
	assert.InDelta(t, 25.0, cfg.Score.HighMin, 0.001)
	assert.InDelta(t, 15.0, cfg.Score.ModerateMin, 0.001)
	assert.InDelta(t, 35.0, cfg.Score.HighRiskStunting, 0.001)
	assert.InDelta(t, 20.0, cfg.Score.LowRiskStunting, 0.001)

	assert.Equal(t, "out", cfg.Export.Dir)
	assert.Equal(t, 10, cfg.Export.TopN)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
survey:
  path: data/cfsva.xlsx
  sheet: Children
log:
  level: debug
  format: console
export:
  dir: artifacts
  top_n: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/cfsva.xlsx", cfg.Survey.Path)
	assert.Equal(t, "Children", cfg.Survey.Sheet)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "artifacts", cfg.Export.Dir)
	assert.Equal(t, 5, cfg.Export.TopN)
	// Defaults still apply for unset values
	assert.Equal(t, "S0_D_Dist", cfg.Survey.Columns.District)
	assert.InDelta(t, 0.6, cfg.Score.StuntingWeight, 0.001)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
log:
  level: debug
export:
  dir: artifacts
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("NUTRITION_LOG_LEVEL", "warn")
	t.Setenv("NUTRITION_EXPORT_DIR", "env-out")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "env-out", cfg.Export.Dir)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("NUTRITION_EXPORT_TOP_N", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Export.TopN)
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("survey: [unclosed"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
