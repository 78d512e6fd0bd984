package vite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrrizkin/vite-plugin-backend/pkg"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestDevServerURLFromHotFile(t *testing.T) {
	hotFile := filepath.Join(t.TempDir(), "hot")
	p, err := New(Config{Input: []string{"src/app.ts"}, HotFile: hotFile})
	require.NoError(t, err)

	// Absence means no dev server, never an error.
	_, ok := p.DevServerURL()
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(hotFile, []byte("http://127.0.0.1:5173\n"), 0644))
	url, ok := p.DevServerURL()
	require.True(t, ok)
	assert.Equal(t, "http://127.0.0.1:5173", url)
}

func TestEntryAgainstDevServer(t *testing.T) {
	hotFile := filepath.Join(t.TempDir(), "hot")
	p, err := New(Config{Input: []string{"src/app.ts"}, HotFile: hotFile})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(hotFile, []byte("http://127.0.0.1:5173"), 0644))

	url, err := p.Entry("src/app.ts")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:5173/app.js", url)
}

func TestEntryAgainstManifest(t *testing.T) {
	chdir(t, t.TempDir())

	manifest := pkg.Manifest{
		"src/app.ts": {
			File:    "assets/app-4BZN2XUD.js",
			Src:     "src/app.ts",
			IsEntry: true,
			CSS:     []string{"assets/app-GFJNXUKA.css"},
		},
	}
	require.NoError(t, pkg.WriteManifest(manifest, pkg.ManifestPath("public", "build")))

	p, err := New(Config{Input: []string{"src/app.ts"}})
	require.NoError(t, err)

	url, err := p.Entry("src/app.ts")
	require.NoError(t, err)
	assert.Equal(t, "/build/assets/app-4BZN2XUD.js", url)

	_, err = p.Entry("src/missing.ts")
	assert.Error(t, err)
}

func TestTagsDevMode(t *testing.T) {
	hotFile := filepath.Join(t.TempDir(), "hot")
	p, err := New(Config{Input: []string{"src/app.ts", "src/app.css"}, HotFile: hotFile})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(hotFile, []byte("http://127.0.0.1:5173"), 0644))

	tags, err := p.Tags()
	require.NoError(t, err)

	html := string(tags)
	assert.Contains(t, html, `<script type="module" src="http://127.0.0.1:5173/app.js"></script>`)
	assert.Contains(t, html, `<link rel="stylesheet" href="http://127.0.0.1:5173/app.css" />`)
}

func TestTagsProductionMode(t *testing.T) {
	chdir(t, t.TempDir())

	manifest := pkg.Manifest{
		"src/app.ts": {
			File:    "assets/app-4BZN2XUD.js",
			Src:     "src/app.ts",
			IsEntry: true,
			CSS:     []string{"assets/app-GFJNXUKA.css"},
		},
	}
	require.NoError(t, pkg.WriteManifest(manifest, pkg.ManifestPath("public", "build")))

	p, err := New(Config{Input: []string{"src/app.ts"}})
	require.NoError(t, err)

	tags, err := p.Tags()
	require.NoError(t, err)

	html := string(tags)
	assert.Contains(t, html, `<link rel="stylesheet" href="/build/assets/app-GFJNXUKA.css" />`)
	assert.Contains(t, html, `<script type="module" src="/build/assets/app-4BZN2XUD.js"></script>`)
}
