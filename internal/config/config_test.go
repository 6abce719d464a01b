package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", c.HTTPAddr)
	require.Equal(t, DriverFile, c.StorageDriver)
	require.Equal(t, "data", c.DataDir)
	require.Equal(t, "data/uploads", c.UploadsDir)
	require.Equal(t, 60, c.JWTExpireMin)
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("POSTGRES_DSN", "postgres://u:p@localhost:5432/clipy")
	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, DriverPostgres, c.StorageDriver)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "redis")

	_, err := Load()
	require.Error(t, err)
}
