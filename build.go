package vite

import (
	"fmt"
	"os"

	esbuild "github.com/evanw/esbuild/pkg/api"

	"github.com/mrrizkin/vite-plugin-backend/pkg"
)

// Build runs a one-shot production build and writes the manifest the backend
// resolves assets through. It never touches the hot file, the environment TLS
// configuration, or signal handlers.
func (p *Plugin) Build() error {
	p.mode = modeBuild

	in := pkg.BuildInput{
		Entries:   p.Config.Input,
		PublicDir: p.Config.PublicDirectory,
		BuildDir:  p.Config.BuildDirectory,
		AssetURL:  os.Getenv(pkg.EnvAssetURL),
		Serve:     false,
	}
	opts := pkg.MergeBuildOptions(in, p.Config.BuildOptions)

	result := esbuild.Build(opts)
	if len(result.Errors) > 0 {
		return fmt.Errorf("build error: %v", result.Errors[0].Text)
	}

	manifest, err := pkg.ManifestFromMetafile(result.Metafile, opts.Outdir)
	if err != nil {
		return err
	}
	manifestPath := pkg.ManifestPath(p.Config.PublicDirectory, p.Config.BuildDirectory)
	if err := pkg.WriteManifest(manifest, manifestPath); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	p.Logger.Info().
		Int("entries", len(manifest)).
		Str("manifest", manifestPath).
		Msg("Build complete")
	return nil
}
