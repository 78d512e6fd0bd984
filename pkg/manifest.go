package pkg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ManifestEntry maps one source entry point to its built output.
type ManifestEntry struct {
	File    string   `json:"file"`
	Src     string   `json:"src,omitempty"`
	IsEntry bool     `json:"isEntry,omitempty"`
	CSS     []string `json:"css,omitempty"`
}

type Manifest map[string]ManifestEntry

// Entry looks up a manifest record by its source path.
func (m Manifest) Entry(name string) (ManifestEntry, bool) {
	entry, ok := m[name]
	return entry, ok
}

// metafile mirrors the slice of esbuild's metafile JSON the manifest needs.
type metafile struct {
	Outputs map[string]metafileOutput `json:"outputs"`
}

type metafileOutput struct {
	EntryPoint string `json:"entryPoint"`
	CSSBundle  string `json:"cssBundle"`
}

// ManifestFromMetafile converts an esbuild metafile into the manifest the
// backend consumes. Output paths are rewritten relative to outDir so the
// backend can join them onto its base path directly.
func ManifestFromMetafile(meta string, outDir string) (Manifest, error) {
	var parsed metafile
	if err := json.Unmarshal([]byte(meta), &parsed); err != nil {
		return nil, fmt.Errorf("parsing metafile: %w", err)
	}

	prefix := filepath.ToSlash(outDir)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	manifest := make(Manifest)
	for out, info := range parsed.Outputs {
		if info.EntryPoint == "" {
			continue
		}
		entry := ManifestEntry{
			File:    strings.TrimPrefix(filepath.ToSlash(out), prefix),
			Src:     info.EntryPoint,
			IsEntry: true,
		}
		if info.CSSBundle != "" {
			entry.CSS = []string{strings.TrimPrefix(filepath.ToSlash(info.CSSBundle), prefix)}
		}
		manifest[info.EntryPoint] = entry
	}
	return manifest, nil
}

// WriteManifest writes the manifest next to the build output.
func WriteManifest(manifest Manifest, path string) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Manager caches parsed manifests by path, invalidated on modification time.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]cachedManifest
}

type cachedManifest struct {
	manifest Manifest
	modTime  time.Time
}

func NewManager() *Manager {
	return &Manager{entries: make(map[string]cachedManifest)}
}

// Load returns the manifest at path, reusing the cached parse while the file
// is unchanged on disk.
func (m *Manager) Load(path string) (Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	cached, ok := m.entries[path]
	m.mu.RUnlock()
	if ok && cached.modTime.Equal(info.ModTime()) {
		return cached.manifest, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	m.mu.Lock()
	m.entries[path] = cachedManifest{manifest: manifest, modTime: info.ModTime()}
	m.mu.Unlock()
	return manifest, nil
}
