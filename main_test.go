package main

import (
	"context"
	"path/filepath"
	"testing"

	"student-registry/config"
	"student-registry/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStoreSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{StoreDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "data", "students.db")}

	s, closeStore, err := openStore(cfg)
	require.NoError(t, err)
	_, err = s.Add(ctx, "A", "a@x", "C")
	require.NoError(t, err)
	closeStore()

	// Повторное открытие с DB_RESET очищает таблицу и счётчик
	cfg.DBReset = true
	s, closeStore, err = openStore(cfg)
	require.NoError(t, err)
	defer closeStore()

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	id, err := s.Add(ctx, "B", "b@x", "C")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.IsType(t, &store.SQLStore{}, s)
}
