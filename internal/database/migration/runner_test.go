package migration

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_OrdersAndChecksums(t *testing.T) {
	src := fstest.MapFS{
		"V2__add_index.sql":   {Data: []byte("CREATE INDEX x ON profiles (id);")},
		"V1__init.sql":        {Data: []byte("  CREATE TABLE profiles (id uuid);\n")},
		"README.md":           {Data: []byte("ignored")},
		"V3__notes.sql.bak":   {Data: []byte("ignored")},
		"nested/V9__skip.sql": {Data: []byte("ignored")},
	}

	migs, err := loadMigrations(src)
	require.NoError(t, err)
	require.Len(t, migs, 2)

	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "init", migs[0].Name)
	assert.Equal(t, "CREATE TABLE profiles (id uuid);", migs[0].SQL)
	assert.Len(t, migs[0].Checksum, 64)
	assert.Equal(t, int64(2), migs[1].Version)
}

func TestLoadMigrations_RejectsEmptyAndDuplicates(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{"V1__empty.sql": {Data: []byte("  ")}})
	assert.ErrorIs(t, err, ErrEmptyMigration)
	assert.ErrorContains(t, err, "V1__empty.sql")

	_, err = loadMigrations(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	})
	assert.ErrorIs(t, err, ErrDuplicateVersion)
}

func TestPending(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "init", Checksum: "aaa"},
		{Version: 2, Name: "index", Checksum: "bbb"},
		{Version: 3, Name: "rating", Checksum: "ccc"},
	}

	todo, err := Pending(migs, map[int64]string{1: "aaa"})
	require.NoError(t, err)
	require.Len(t, todo, 2)
	assert.Equal(t, int64(2), todo[0].Version)
	assert.Equal(t, int64(3), todo[1].Version)

	todo, err = Pending(migs, map[int64]string{1: "aaa", 2: "bbb", 3: "ccc"})
	require.NoError(t, err)
	assert.Empty(t, todo)

	_, err = Pending(migs, map[int64]string{1: "aaa", 2: "edited"})
	require.ErrorIs(t, err, ErrChecksumMismatch)
	assert.ErrorContains(t, err, "version=2")
}

func TestRunner_NilDB(t *testing.T) {
	assert.ErrorIs(t, Runner{}.Run(context.Background(), nil), ErrNilDB)
}

func TestEmbeddedMigrations(t *testing.T) {
	sub, err := fs.Sub(embedded, "sql")
	require.NoError(t, err)

	migs, err := loadMigrations(sub)
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, "create_profiles", migs[0].Name)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS profiles")
}
