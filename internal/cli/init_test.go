package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coopledger/internal/ledger"
)

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")))
	})

	t.Run("empty path is ignored", func(t *testing.T) {
		assert.NoError(t, LoadEnvFile(""))
	})

	t.Run("values are loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("COOPLEDGER_TEST_VALUE=from-file\n"), 0o644))
		t.Setenv("COOPLEDGER_TEST_VALUE", "")
		os.Unsetenv("COOPLEDGER_TEST_VALUE")

		require.NoError(t, LoadEnvFile(path))
		assert.Equal(t, "from-file", os.Getenv("COOPLEDGER_TEST_VALUE"))
	})
}

func TestLoadAndValidateConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEDGER_DB_PATH", filepath.Join(dir, "db", "ledger.db"))
	t.Setenv("EXPORT_FORMAT", "xlsx")

	cfg, err := LoadAndValidateConfig()
	require.NoError(t, err)
	assert.Equal(t, "xlsx", cfg.ExportFormat)

	t.Setenv("EXPORT_FORMAT", "pdf")
	_, err = LoadAndValidateConfig()
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEDGER_DB_PATH", filepath.Join(dir, "ledger.db"))
	t.Setenv("EXPORT_DIR", filepath.Join(dir, "exports"))
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadAndValidateConfig()
	require.NoError(t, err)

	var logs bytes.Buffer
	app, err := Open(cfg, SetupLogger(cfg, &logs))
	require.NoError(t, err)
	defer app.Close()

	m, err := app.Ledger.CreateMember(context.Background(), ledger.CreateMemberParams{Name: "Asha"})
	require.NoError(t, err)
	assert.NotZero(t, m.ID)

	paths, err := app.Exporter.Export(context.Background())
	require.NoError(t, err)
	assert.Len(t, paths, 3)

	assert.Contains(t, logs.String(), `"component":"ledger"`)
}
