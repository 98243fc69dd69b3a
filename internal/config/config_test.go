package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "test.db")
	t.Setenv("DEFAULT_CURRENCY", "eur")
	t.Setenv("SPLIT_TOLERANCE_MINOR_UNITS", "0")
	t.Setenv("PAGE_SIZE", "oops")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "test.db", cfg.DatabaseURL)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
	assert.Equal(t, int64(0), cfg.SplitTolerance)
	assert.Equal(t, 100, cfg.PageSize)
}

func TestGetEnvInt64(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int64
	}{
		{"valid", "5", 5},
		{"padded", " 7 ", 7},
		{"negative", "-1", 3},
		{"garbage", "abc", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SPLITLEDGER_TEST_INT", tt.value)
			assert.Equal(t, tt.want, getEnvInt64("SPLITLEDGER_TEST_INT", 3))
		})
	}

	assert.Equal(t, int64(9), getEnvInt64("SPLITLEDGER_TEST_UNSET", 9))
}
