package service

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"portfolio/app/models"
	"portfolio/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func seedDB(t *testing.T, dataDir string, posts ...*models.Post) {
	t.Helper()
	db, err := openDB(dataDir, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, repositories.NewBadgerPostRepository(db).Replace(posts))
}

func countPosts(t *testing.T, dataDir string) int {
	t.Helper()
	db, err := openDB(dataDir, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()
	n, err := repositories.NewBadgerPostRepository(db).Count()
	require.NoError(t, err)
	return n
}

func TestBackupRestore(t *testing.T) {
	tmp := t.TempDir()
	dataDir := filepath.Join(tmp, "badger")
	seedDB(t, dataDir,
		&models.Post{ID: "/a.md", Title: "A", Slug: "/a", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		&models.Post{ID: "/b.md", Title: "B", Slug: "/b", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	)

	backupFile, err := Backup(dataDir, filepath.Join(tmp, "backups"), zap.NewNop())
	require.NoError(t, err)
	assert.FileExists(t, backupFile)

	restored := filepath.Join(tmp, "restored")
	var out bytes.Buffer
	require.NoError(t, Restore(restored, backupFile, false, strings.NewReader(""), &out, zap.NewNop()))
	assert.Empty(t, out.String(), "no prompt without an existing database")
	assert.Equal(t, 2, countPosts(t, restored))
}

func TestStatus(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "badger")
	before := time.Now().UTC().Add(-time.Second)
	seedDB(t, dataDir,
		&models.Post{ID: "/a.md", Title: "A", Slug: "/a", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	)

	st, err := Status(dataDir, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, st.Posts)
	assert.True(t, st.SyncedAt.After(before))

	_, err = Status(filepath.Join(t.TempDir(), "missing"), zap.NewNop())
	assert.ErrorContains(t, err, "no database exists")
}

func TestBackupMissingDatabase(t *testing.T) {
	_, err := Backup(filepath.Join(t.TempDir(), "missing"), t.TempDir(), zap.NewNop())
	assert.ErrorContains(t, err, "no database exists")
}

func TestRestorePrompt(t *testing.T) {
	tmp := t.TempDir()
	source := filepath.Join(tmp, "source")
	seedDB(t, source, &models.Post{ID: "/a.md", Title: "A", Slug: "/a", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	backupFile, err := Backup(source, filepath.Join(tmp, "backups"), zap.NewNop())
	require.NoError(t, err)

	target := filepath.Join(tmp, "target")
	seedDB(t, target)

	t.Run("declined", func(t *testing.T) {
		var out bytes.Buffer
		err := Restore(target, backupFile, false, strings.NewReader("n\n"), &out, zap.NewNop())
		assert.ErrorIs(t, err, ErrCancelled)
		assert.Contains(t, out.String(), "Existing database found")
		assert.Equal(t, 0, countPosts(t, target))
	})

	t.Run("accepted", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Restore(target, backupFile, false, strings.NewReader("y\n"), &out, zap.NewNop()))
		assert.Equal(t, 1, countPosts(t, target))
	})
}

func TestRestoreMissingFile(t *testing.T) {
	err := Restore(t.TempDir(), filepath.Join(t.TempDir(), "nope.db"), true, nil, nil, zap.NewNop())
	assert.ErrorContains(t, err, "backup file does not exist")
}

func TestBuildCheck(t *testing.T) {
	cfg := testConfig(t)

	summary, err := BuildCheck(context.Background(), cfg.ContentDir, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Posts)
	require.Len(t, summary.Items, 2)
	assert.Equal(t, SummaryEntry{Slug: "/hello-world", Title: "Hello World", Date: "2024-06-01"}, summary.Items[0])
	assert.Equal(t, "/older", summary.Items[1].Slug)

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, WriteSummary(&out, summary, "text"))
		assert.Contains(t, out.String(), "2024-06-01  /hello-world")
		assert.Contains(t, out.String(), "2 posts OK in "+cfg.ContentDir)
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, WriteSummary(&out, summary, "yaml"))

		var decoded ContentSummary
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, *summary, decoded)
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, WriteSummary(&bytes.Buffer{}, summary, "xml"))
	})
}

func TestBuildCheckInvalidContent(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "broken.md", "---\ntitle: Broken\ndate: someday\n---\n")

	_, err := BuildCheck(context.Background(), dir, zap.NewNop())
	assert.ErrorContains(t, err, "broken.md")
}
