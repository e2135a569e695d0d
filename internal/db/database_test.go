package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/storefront/internal/models"
)

func memoryOptions() Options {
	return Options{
		Driver:       DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
		LogLevel:     logger.Silent,
	}
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: DriverSQLite})
	require.ErrorIs(t, err, ErrEmptyDSN)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "oracle", DSN: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestOpen_SQLite_PoolAndMigrate(t *testing.T) {
	ctx := context.Background()
	gdb, err := Open(ctx, memoryOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	require.NoError(t, Migrate(ctx, gdb))
	for _, m := range []any{&models.User{}, &models.Admin{}, &models.Product{}} {
		assert.True(t, gdb.Migrator().HasTable(m))
	}
	assert.True(t, gdb.Migrator().HasColumn(&models.Product{}, "photo_url"))
	assert.True(t, gdb.Migrator().HasColumn(&models.User{}, "password"))

	require.NoError(t, Ping(ctx, gdb))
}

func TestPing_ClosedPool(t *testing.T) {
	gdb, err := Open(context.Background(), memoryOptions())
	require.NoError(t, err)
	require.NoError(t, Close(gdb))

	require.Error(t, Ping(context.Background(), gdb))
}
