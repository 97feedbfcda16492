package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedKeys = []string{
	"TAX_RATE", "CURRENCY_SYMBOL", "STORE_NAME", "STORE_ADDRESS", "STORE_PHONE", "TAX_LABEL",
	"RECEIPT_FOOTER", "RECEIPT_WIDTH", "TXN_PREFIX", "LOG_LEVEL", "DATABASE_URL", "DB_HOST",
	"DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PORT", "DB_TIMEZONE",
}

// clearEnv blanks every key this package reads; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range managedKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "0.08", cfg.TaxRate.String())
	assert.Equal(t, "$", cfg.CurrencySymbol)
	assert.Equal(t, "TXN", cfg.TxnPrefix)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 40, cfg.ReceiptWidth)
	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, "Main Street Pharmacy", cfg.Header().StoreName)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TAX_RATE", "0.0725")
	t.Setenv("CURRENCY_SYMBOL", "€")
	t.Setenv("STORE_NAME", "Apotheke Nord")
	t.Setenv("TXN_PREFIX", "AN")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "pos")
	t.Setenv("DB_NAME", "catalog")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "0.0725", cfg.TaxRate.String())
	assert.Equal(t, "€", cfg.CurrencySymbol)
	assert.Equal(t, "AN", cfg.TxnPrefix)
	assert.True(t, cfg.Database.Enabled())
	assert.Contains(t, cfg.Database.DSN(), "host=db user=pos")
	assert.Contains(t, cfg.Database.DSN(), "port=5432")
	assert.Contains(t, cfg.Database.DSN(), "TimeZone=UTC")
}

func TestFromEnv_DatabaseURLWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://pos@localhost/catalog")
	t.Setenv("DB_HOST", "ignored")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres://pos@localhost/catalog", cfg.Database.DSN())
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]string{
		"TAX_RATE":      "eight percent",
		"RECEIPT_WIDTH": "wide",
		"LOG_LEVEL":     "chatty",
		"TXN_PREFIX":    "TX-N",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}

	t.Run("negative tax", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TAX_RATE", "-0.1")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "TaxRate")
	})
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_NAME=Env File Store\nTAX_RATE=0.05\n"), 0o600))

	cfg, loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, "Env File Store", cfg.StoreName)
	assert.Equal(t, "0.05", cfg.TaxRate.String())
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	cfg, loaded, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Equal(t, "$", cfg.CurrencySymbol)
}
