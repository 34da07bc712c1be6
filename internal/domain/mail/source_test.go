package mail

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
)

func TestDirSource_FetchUnread(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "msg1.txt"), []byte(notification), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.txt.done"), []byte("processed"), 0o644))

	source := NewDirSource(dir)

	bodies, err := source.FetchUnread(context.Background())
	require.NoError(t, err)
	require.Len(t, bodies, 1)
	assert.Contains(t, bodies[0], "利用日")

	// A second fetch sees nothing; the file was marked done.
	bodies, err = source.FetchUnread(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bodies)
}

func TestDirSource_DecodesLegacyEncodings(t *testing.T) {
	dir := t.TempDir()

	sjis, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(notification))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sjis.txt"), sjis, 0o644))

	bodies, err := NewDirSource(dir).FetchUnread(context.Background())
	require.NoError(t, err)
	require.Len(t, bodies, 1)

	candidate, err := Extract(bodies[0])
	require.NoError(t, err)
	assert.Equal(t, "ローソン 渋谷店", candidate.Description)
}

func TestDirSource_MissingDirectory(t *testing.T) {
	_, err := NewDirSource("/nonexistent/mail").FetchUnread(context.Background())
	assert.Error(t, err)
}
