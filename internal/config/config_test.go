package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	chdirForTest(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "./dev.db", cfg.Database.Path)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, 300*time.Millisecond, cfg.Preview.Debounce)
	assert.Equal(t, 3, cfg.WorkloadPolicy().LeadCrewThreshold)
	assert.Equal(t, 0.5, cfg.PricingPolicy().HybridMarketWeight)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
app:
  environment: production
http:
  port: "9000"
engine:
  lead_crew_threshold: 5
  hybrid_market_weight: 0.25
preview:
  debounce: 1s
`)
	t.Setenv("CLEANBID_HTTP_PORT", "9100")
	t.Setenv("CLEANBID_DATABASE_PATH", "/tmp/bids.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.IsDev())
	assert.Equal(t, "9100", cfg.HTTP.Port)
	assert.Equal(t, "/tmp/bids.db", cfg.Database.Path)
	assert.Equal(t, 5, cfg.Engine.LeadCrewThreshold)
	assert.Equal(t, 0.25, cfg.Engine.HybridMarketWeight)
	assert.Equal(t, time.Second, cfg.Preview.Debounce)
	assert.Equal(t, 8.0, cfg.Engine.DefaultShiftHours)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CLEANBID_LOGGING_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CLEANBID_LOGGING_LEVEL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, `
engine:
  hybrid_market_weight: 1.5
`)
	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("CLEANBID_LOGGING_FORMAT", "xml")
	_, err = Load(writeConfig(t, "{}"))
	assert.Error(t, err)
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
