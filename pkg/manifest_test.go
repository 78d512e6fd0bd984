package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMetafile = `{
  "outputs": {
    "public/build/assets/app-4BZN2XUD.js": {
      "entryPoint": "src/app.ts",
      "cssBundle": "public/build/assets/app-GFJNXUKA.css"
    },
    "public/build/assets/app-GFJNXUKA.css": {},
    "public/build/assets/logo-5RRW2XUD.png": {}
  }
}`

func TestManifestFromMetafile(t *testing.T) {
	manifest, err := ManifestFromMetafile(sampleMetafile, "public/build")
	require.NoError(t, err)
	require.Len(t, manifest, 1)

	entry, ok := manifest.Entry("src/app.ts")
	require.True(t, ok)
	assert.Equal(t, "assets/app-4BZN2XUD.js", entry.File)
	assert.Equal(t, "src/app.ts", entry.Src)
	assert.True(t, entry.IsEntry)
	assert.Equal(t, []string{"assets/app-GFJNXUKA.css"}, entry.CSS)
}

func TestManifestFromMetafileRejectsGarbage(t *testing.T) {
	_, err := ManifestFromMetafile("not json", "public/build")
	require.Error(t, err)
}

func TestWriteManifestAndLoad(t *testing.T) {
	manifest := Manifest{
		"src/app.ts": {File: "assets/app-4BZN2XUD.js", Src: "src/app.ts", IsEntry: true},
	}
	path := filepath.Join(t.TempDir(), "build", ManifestFileName)
	require.NoError(t, WriteManifest(manifest, path))

	manager := NewManager()
	loaded, err := manager.Load(path)
	require.NoError(t, err)
	assert.Equal(t, manifest, loaded)

	// A second load with an unchanged file serves the cached parse.
	again, err := manager.Load(path)
	require.NoError(t, err)
	assert.Equal(t, manifest, again)
}

func TestManagerLoadMissing(t *testing.T) {
	manager := NewManager()
	_, err := manager.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
