package vite

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrrizkin/vite-plugin-backend/pkg"
	"github.com/mrrizkin/vite-plugin-backend/utils"
)

// DevServerURL reports the live dev-server URL from the hot file. A missing
// hot file means no dev server is running; that is never an error.
func (p *Plugin) DevServerURL() (string, bool) {
	data, err := os.ReadFile(p.Config.HotFile)
	if err != nil {
		return "", false
	}
	url := strings.TrimSpace(string(data))
	if url == "" {
		return "", false
	}
	return url, true
}

// Entry resolves an entry point to the URL the backend should reference: the
// dev server when one is live, the manifest otherwise.
func (p *Plugin) Entry(name string) (string, error) {
	if devURL, ok := p.DevServerURL(); ok {
		return devURL + "/" + servedName(name), nil
	}

	manifest, err := p.manifests.Load(pkg.ManifestPath(p.Config.PublicDirectory, p.Config.BuildDirectory))
	if err != nil {
		return "", fmt.Errorf("loading manifest: %w", err)
	}
	entry, ok := manifest.Entry(name)
	if !ok {
		return "", fmt.Errorf("entry %q not found in manifest", name)
	}
	return "/" + p.Config.BuildDirectory + "/" + entry.File, nil
}

// Tags renders the script and stylesheet tags for the given entry points,
// including any CSS the manifest associates with a production entry.
func (p *Plugin) Tags(entries ...string) (template.HTML, error) {
	if len(entries) == 0 {
		entries = p.Config.Input
	}

	var tags []string
	if devURL, ok := p.DevServerURL(); ok {
		for _, entry := range entries {
			url := devURL + "/" + servedName(entry)
			if strings.HasSuffix(url, ".css") {
				tags = append(tags, utils.GenerateStyleLink(url, nil))
			} else {
				tags = append(tags, utils.GenerateScriptTag(url, nil))
			}
		}
		return template.HTML(strings.Join(tags, "\n")), nil
	}

	manifest, err := p.manifests.Load(pkg.ManifestPath(p.Config.PublicDirectory, p.Config.BuildDirectory))
	if err != nil {
		return "", fmt.Errorf("loading manifest: %w", err)
	}
	for _, name := range entries {
		entry, ok := manifest.Entry(name)
		if !ok {
			return "", fmt.Errorf("entry %q not found in manifest", name)
		}
		for _, css := range entry.CSS {
			tags = append(tags, utils.GenerateStyleLink("/"+p.Config.BuildDirectory+"/"+css, nil))
		}
		file := "/" + p.Config.BuildDirectory + "/" + entry.File
		if strings.HasSuffix(file, ".css") {
			tags = append(tags, utils.GenerateStyleLink(file, nil))
		} else {
			tags = append(tags, utils.GenerateScriptTag(file, nil))
		}
	}
	return template.HTML(strings.Join(tags, "\n")), nil
}

// servedName maps an entry source path to the name the dev server serves it
// under: base name, source extensions compiled to their output form.
func servedName(entry string) string {
	name := filepath.Base(entry)
	switch ext := filepath.Ext(name); ext {
	case ".ts", ".tsx", ".jsx":
		name = strings.TrimSuffix(name, ext) + ".js"
	}
	return name
}
