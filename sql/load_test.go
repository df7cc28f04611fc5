package sql

import (
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	db := initDB(t)

	t.Run("Initialize database extensions", func(t *testing.T) {
		err := Init(db.Instance)
		assert.NoError(t, err)

		// Verify pgvector extension is created
		var exists bool
		err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_extension WHERE extname = 'vector');").Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "pgvector extension should be created")
	})

	t.Run("Initialize database extensions is idempotent", func(t *testing.T) {
		err := Init(db.Instance)
		assert.NoError(t, err)

		err = Init(db.Instance)
		assert.NoError(t, err)
	})
}

func TestLoadDocumentsSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	err := Init(db.Instance)
	require.NoError(t, err)

	t.Run("Load documents SQL functions", func(t *testing.T) {
		err := LoadDocumentsSql(db.Instance, false)
		assert.NoError(t, err)

		for _, funcName := range DocumentsFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist", funcName)
		}
	})

	t.Run("Load documents SQL functions is idempotent", func(t *testing.T) {
		err := LoadDocumentsSql(db.Instance, false)
		assert.NoError(t, err)
	})

	t.Run("Force reload documents SQL functions", func(t *testing.T) {
		err := LoadDocumentsSql(db.Instance, true)
		assert.NoError(t, err)
	})
}

func TestLoadChunksSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	err := Init(db.Instance)
	require.NoError(t, err)

	t.Run("Load chunks SQL functions", func(t *testing.T) {
		err := LoadChunksSql(db.Instance, false)
		assert.NoError(t, err)

		for _, funcName := range ChunksFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist", funcName)
		}
	})

	t.Run("Load chunks SQL functions is idempotent", func(t *testing.T) {
		err := LoadChunksSql(db.Instance, false)
		assert.NoError(t, err)
	})
}

func TestLoadAllSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	err := Init(db.Instance)
	require.NoError(t, err)

	t.Run("Load all SQL functions", func(t *testing.T) {
		err := LoadAllSql(db.Instance, false)
		assert.NoError(t, err)

		for _, funcName := range append(append([]string{}, DocumentsFunctions...), ChunksFunctions...) {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist", funcName)
		}
	})
}
