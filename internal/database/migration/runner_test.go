package migration

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xrnode/migrations"
)

func TestLoad_OrdersAndSkipsUnrelatedFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"V10__later.sql":   {Data: []byte("SELECT 10;")},
		"V2__second.sql":   {Data: []byte("  SELECT 2;\n")},
		"README.md":        {Data: []byte("notes")},
		"V1__first.sql":    {Data: []byte("SELECT 1;")},
		"nested/V3__x.sql": {Data: []byte("SELECT 3;")},
	}

	migs, err := Runner{FS: fsys}.Load()
	require.NoError(t, err)
	require.Len(t, migs, 3)
	assert.Equal(t, []int64{1, 2, 10}, []int64{migs[0].Version, migs[1].Version, migs[2].Version})
	assert.Equal(t, "second", migs[1].Name)
	assert.Equal(t, "SELECT 2;", migs[1].SQL)
	assert.Len(t, migs[0].Checksum, 64)
}

func TestLoad_RejectsDuplicatesAndEmptyFiles(t *testing.T) {
	_, err := Runner{FS: fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 1;")},
	}}.Load()
	assert.ErrorContains(t, err, "duplicate migration version")

	_, err = Runner{FS: fstest.MapFS{"V1__a.sql": {Data: []byte("   ")}}}.Load()
	assert.ErrorContains(t, err, "empty migration file")
}

func TestLoad_EmbeddedSchema(t *testing.T) {
	migs, err := Runner{FS: migrations.Files}.Load()
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, "participants", migs[0].Name)
	assert.Equal(t, "connections", migs[1].Name)
	assert.Contains(t, migs[1].SQL, "UNIQUE (viewer_id, profile_id)")
}

func TestLoad_MissingDirIsEmpty(t *testing.T) {
	migs, err := Runner{Dir: t.TempDir() + "/absent"}.Load()
	require.NoError(t, err)
	assert.Empty(t, migs)
}
