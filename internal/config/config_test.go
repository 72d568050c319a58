package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"API_BASE_URL", "HTTP_TIMEOUT", "STORAGE_DRIVER", "STORAGE_DSN", "STATE_DIR", "EXPORT_DIR", "ENV_FILE"} {
		t.Setenv(EnvPrefix+"_"+k, "")
		require.NoError(t, os.Unsetenv(EnvPrefix+"_"+k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	state := t.TempDir()
	t.Setenv("LMS_STATE_DIR", state)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://localhost:44340/api", c.APIBaseURL)
	assert.Equal(t, 30*time.Second, c.HTTPTimeout)
	assert.Equal(t, StorageFile, c.StorageDriver)
	assert.Equal(t, state, c.StateDir)
	assert.Equal(t, ".", c.ExportDir)
	assert.Empty(t, c.EnvFile)
	assert.Equal(t, "file:"+filepath.Join(state, "lmsctl.db")+"?mode=rwc&_pragma=busy_timeout(5000)", c.SQLiteDSN())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LMS_STATE_DIR", t.TempDir())
	t.Setenv("LMS_API_BASE_URL", "http://lms.test/api")
	t.Setenv("LMS_HTTP_TIMEOUT", "5s")
	t.Setenv("LMS_STORAGE_DRIVER", "sqlite")
	t.Setenv("LMS_STORAGE_DSN", "file:custom.db")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://lms.test/api", c.APIBaseURL)
	assert.Equal(t, 5*time.Second, c.HTTPTimeout)
	assert.Equal(t, StorageSQLite, c.StorageDriver)
	assert.Equal(t, "file:custom.db", c.SQLiteDSN())
}

func TestLoadDotEnvInStateDir(t *testing.T) {
	clearEnv(t)
	state := t.TempDir()
	t.Setenv("LMS_STATE_DIR", state)
	t.Setenv("LMS_EXPORT_DIR", "/from/env")
	envFile := filepath.Join(state, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LMS_EXPORT_DIR=/from/file\nLMS_API_BASE_URL=http://dotenv.test/api\n"), 0o600))
	// godotenv sets variables for the process; restore them after the test.
	t.Setenv("LMS_API_BASE_URL", "")
	require.NoError(t, os.Unsetenv("LMS_API_BASE_URL"))

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, envFile, c.EnvFile)
	assert.Equal(t, "http://dotenv.test/api", c.APIBaseURL)
	assert.Equal(t, "/from/env", c.ExportDir, "real environment wins over the file")
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("LMS_STATE_DIR", t.TempDir())
	t.Setenv("LMS_STORAGE_DRIVER", "mongo")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LMS_STORAGE_DRIVER")

	clearEnv(t)
	t.Setenv("LMS_STATE_DIR", t.TempDir())
	t.Setenv("LMS_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	_, err = Load()
	assert.Error(t, err)
}
