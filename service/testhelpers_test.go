package service

import (
	"os"
	"path/filepath"
	"testing"

	"portfolio/app/config"
	"portfolio/app/models"

	"github.com/stretchr/testify/require"
)

func writePost(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	contentDir := t.TempDir()
	writePost(t, contentDir, "hello-world.md", "---\ntitle: Hello World\ndate: 2024-06-01\ndescription: First post\n---\nHello.\n")
	writePost(t, contentDir, "older.md", "---\ntitle: Older\ndate: 2023-01-15\n---\nOld news.\n")

	return &config.Config{
		Site: models.SiteConfig{
			Name:        "Test Site",
			Description: "A test site",
			URL:         "https://example.com",
			Author:      "tester",
			Language:    "en",
		},
		Projects:   models.DefaultProjects,
		ContentDir: contentDir,
		InMemory:   true,
		Addr:       "127.0.0.1:0",
		LogLevel:   "info",
	}
}
