package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"student-registry/database"
	"student-registry/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const postgresDSNEnv = "STUDENTS_TEST_POSTGRES_DSN"

func newSQLiteStore(t *testing.T) RecordStore {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "students.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLStore(db)
}

func newPostgresStore(t *testing.T) RecordStore {
	t.Helper()
	dsn := os.Getenv(postgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", postgresDSNEnv)
	}
	db, err := database.OpenPostgres(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Reset(db))
	return NewSQLStore(db)
}

func newGormStore(t *testing.T) RecordStore {
	t.Helper()
	dsn := os.Getenv(postgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", postgresDSNEnv)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.ResetGorm(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewGormStore(db)
}

func TestRecordStores(t *testing.T) {
	backends := map[string]func(t *testing.T) RecordStore{
		"sqlite":   newSQLiteStore,
		"postgres": newPostgresStore,
		"gorm":     newGormStore,
	}
	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			runRecordStoreTests(t, newStore)
		})
	}
}

func runRecordStoreTests(t *testing.T, newStore func(t *testing.T) RecordStore) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		s := newStore(t)
		all, err := s.GetAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("add then get all", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Add(ctx, "Alice", "alice@example.com", "Physics")
		require.NoError(t, err)

		all, err := s.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, models.Student{ID: id, Name: "Alice", Email: "alice@example.com", Course: "Physics"}, all[0])
	})

	t.Run("ids are distinct", func(t *testing.T) {
		s := newStore(t)
		seen := map[int64]bool{}
		for i := 0; i < 10; i++ {
			id, err := s.Add(ctx, "n", "e", "c")
			require.NoError(t, err)
			assert.False(t, seen[id], "id %d returned twice", id)
			seen[id] = true
		}
	})

	t.Run("update", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Add(ctx, "A", "a@x", "C1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)

		require.NoError(t, s.Update(ctx, id, "B", "b@x", "C2"))

		all, err := s.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Student{{ID: 1, Name: "B", Email: "b@x", Course: "C2"}}, all)
	})

	t.Run("update with same values", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Add(ctx, "A", "a@x", "C1")
		require.NoError(t, err)
		assert.NoError(t, s.Update(ctx, id, "A", "a@x", "C1"))
	})

	t.Run("missing id", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Add(ctx, "A", "a@x", "C1")
		require.NoError(t, err)
		before, err := s.GetAll(ctx)
		require.NoError(t, err)

		assert.ErrorIs(t, s.Update(ctx, 999, "B", "b@x", "C2"), ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, 999), ErrNotFound)

		after, err := s.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("delete removes exactly one", func(t *testing.T) {
		s := newStore(t)
		var ids []int64
		for _, name := range []string{"one", "two", "three"} {
			id, err := s.Add(ctx, name, name+"@x", "C")
			require.NoError(t, err)
			ids = append(ids, id)
		}

		require.NoError(t, s.Delete(ctx, ids[1]))

		all, err := s.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, ids[0], all[0].ID)
		assert.Equal(t, ids[2], all[1].ID)
	})

	t.Run("delete twice", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Add(ctx, "A", "a@x", "C1")
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, id))
		assert.ErrorIs(t, s.Delete(ctx, id), ErrNotFound)
	})

	t.Run("ids are not reused", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Add(ctx, "A", "a@x", "C")
		require.NoError(t, err)
		last, err := s.Add(ctx, "B", "b@x", "C")
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, last))

		next, err := s.Add(ctx, "C", "c@x", "C")
		require.NoError(t, err)
		assert.Greater(t, next, last)
	})

	t.Run("empty fields are rejected", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Add(ctx, "", "a@x", "C")
		assert.ErrorIs(t, err, ErrInvalidStudent)
		_, err = s.Add(ctx, "A", "   ", "C")
		assert.ErrorIs(t, err, ErrInvalidStudent)

		id, err := s.Add(ctx, "A", "a@x", "C")
		require.NoError(t, err)
		assert.ErrorIs(t, s.Update(ctx, id, "A", "a@x", ""), ErrInvalidStudent)

		all, err := s.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Student{{ID: id, Name: "A", Email: "a@x", Course: "C"}}, all)
	})

	t.Run("values are stored as given", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Add(ctx, " Padded ", "MiXeD@Example.com", "Course 101")
		require.NoError(t, err)

		all, err := s.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Student{{ID: id, Name: " Padded ", Email: "MiXeD@Example.com", Course: "Course 101"}}, all)
	})

	t.Run("order is stable", func(t *testing.T) {
		s := newStore(t)
		for _, name := range []string{"c", "a", "b"} {
			_, err := s.Add(ctx, name, name, name)
			require.NoError(t, err)
		}
		first, err := s.GetAll(ctx)
		require.NoError(t, err)
		second, err := s.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, "c", first[0].Name)
	})
}

func TestSQLStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "students.db")

	db, err := database.OpenSQLite(path)
	require.NoError(t, err)
	s := NewSQLStore(db)
	id, err := s.Add(ctx, "Alice", "alice@example.com", "Physics")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = database.OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	all, err := NewSQLStore(db).GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Student{{ID: id, Name: "Alice", Email: "alice@example.com", Course: "Physics"}}, all)
}

func TestSQLStoreSurfacesStorageErrors(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "students.db"))
	require.NoError(t, err)
	s := NewSQLStore(db)
	require.NoError(t, db.Close())

	_, err = s.Add(ctx, "A", "a@x", "C")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = s.GetAll(ctx)
	assert.Error(t, err)

	err = s.Delete(ctx, 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
