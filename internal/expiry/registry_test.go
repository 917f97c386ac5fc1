package expiry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "bob.alice.map", "# create_ts: 1000000\n# lifespan: 3600\nalice-node1:\n  - t2.micro\n")
	writeFile(t, dir, "carol.webapp.map", "webapp:\n  size: t2.small\n# lifespan: 7200\n# create_ts: 1508284800\n")
	writeFile(t, dir, "dave.only-create.map", "# create_ts: 1000000\n")
	writeFile(t, dir, "erin.only-lifespan.map", "# lifespan: 3600\n")
	writeFile(t, dir, "frank.garbage.map", "# create_ts: yesterday\n# lifespan: 3600\n")
	writeFile(t, dir, "gina.zero.map", "# create_ts: 1000000\n# lifespan: 0\n")
	writeFile(t, dir, "notes.txt", "# create_ts: 1000000\n# lifespan: 3600\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.map"), 0755))

	got, err := ReadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"bob.alice":    "1970-01-12 14:46",
		"carol.webapp": time.Unix(1508284800+7200, 0).UTC().Format(TimeLayout),
	}, got)
}

func TestReadDir_ExpirationIsCreatePlusLifespan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bob.alice.map", "# create_ts: 1000000\n# lifespan: 3600\n")

	got, err := ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1003600, 0).UTC().Format("2006-01-02 15:04"), got["bob.alice"])
}

func TestReadDir_MissingDirectory(t *testing.T) {
	got, err := ReadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadDir_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file", "x")

	_, err := ReadDir(filepath.Join(dir, "file"))
	require.Error(t, err)
}

func TestRegistry_EntriesSorted(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "zed.a.map", "# create_ts: 10\n# lifespan: 20\n")
	writeFile(t, dir, "amy.b.map", "# create_ts: 10\n# lifespan: 20\n")

	entries, err := NewRegistry(dir, nil).Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "amy.b", entries[0].Key)
	assert.Equal(t, "zed.a", entries[1].Key)
	assert.Equal(t, time.Unix(30, 0).UTC(), entries[0].ExpiresAt)
}
