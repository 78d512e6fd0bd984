package pkg

import (
	"path/filepath"
	"strings"

	esbuild "github.com/evanw/esbuild/pkg/api"
)

// Loader keeps every static asset a discrete file the backend can reference
// through the manifest; nothing is inlined into the bundle.
var Loader = map[string]esbuild.Loader{
	".png":   esbuild.LoaderFile,
	".svg":   esbuild.LoaderFile,
	".jpg":   esbuild.LoaderFile,
	".jpeg":  esbuild.LoaderFile,
	".gif":   esbuild.LoaderFile,
	".bmp":   esbuild.LoaderFile,
	".woff2": esbuild.LoaderFile,
	".woff":  esbuild.LoaderFile,
	".ttf":   esbuild.LoaderFile,
	".eot":   esbuild.LoaderFile,
	".mp4":   esbuild.LoaderFile,
	".webm":  esbuild.LoaderFile,
	".wav":   esbuild.LoaderFile,
	".mp3":   esbuild.LoaderFile,
	".m4a":   esbuild.LoaderFile,
	".aac":   esbuild.LoaderFile,
	".oga":   esbuild.LoaderFile,
	".txt":   esbuild.LoaderFile,
	".xml":   esbuild.LoaderFile,
	".csv":   esbuild.LoaderFile,
	".ts":    esbuild.LoaderTS,
	".tsx":   esbuild.LoaderTSX,
	".js":    esbuild.LoaderJS,
	".jsx":   esbuild.LoaderJSX,
	".css":   esbuild.LoaderCSS,
}

// BuildInput carries the normalized plugin settings the merger needs.
type BuildInput struct {
	Entries   []string
	PublicDir string
	BuildDir  string
	AssetURL  string
	Serve     bool
}

// MergeBuildOptions produces the bundler's effective build configuration.
// Every computed value is a fallback: a field the user already set is never
// overwritten. Metafile and Bundle are requirements of the integration, not
// preferences, so they are always on; Write follows the invocation mode.
func MergeBuildOptions(in BuildInput, user esbuild.BuildOptions) esbuild.BuildOptions {
	opts := user

	if opts.PublicPath == "" && !in.Serve {
		opts.PublicPath = ResolveBase(in.AssetURL, in.BuildDir)
	}
	if opts.Outdir == "" {
		opts.Outdir = filepath.Join(in.PublicDir, in.BuildDir)
	}
	if len(opts.EntryPoints) == 0 {
		opts.EntryPoints = in.Entries
	}
	if opts.Loader == nil {
		opts.Loader = Loader
	}
	if opts.EntryNames == "" {
		if in.Serve {
			opts.EntryNames = "[name]"
		} else {
			opts.EntryNames = "assets/[name]-[hash]"
		}
	}
	if opts.AssetNames == "" {
		if in.Serve {
			opts.AssetNames = "[name]"
		} else {
			opts.AssetNames = "assets/[name]-[hash]"
		}
	}
	if opts.Format == esbuild.FormatDefault {
		opts.Format = esbuild.FormatESModule
	}

	opts.Bundle = true
	opts.Metafile = true
	opts.Write = !in.Serve
	if !in.Serve {
		opts.MinifyWhitespace = true
		opts.MinifyIdentifiers = true
		opts.MinifySyntax = true
	}

	return opts
}

// ResolveBase builds the production base path: the asset URL (possibly empty)
// joined with the build directory, slash-terminated.
func ResolveBase(assetURL, buildDir string) string {
	return strings.TrimSuffix(assetURL, "/") + "/" + buildDir + "/"
}

// ManifestPath is where the bundler's manifest lives for a given layout.
func ManifestPath(publicDir, buildDir string) string {
	return filepath.Join(publicDir, buildDir, ManifestFileName)
}

// MergeServerConfig fills the dev-server configuration from the environment
// override where the user left fields unset. User values always win; an
// explicit NoHMR disables HMR entirely.
func MergeServerConfig(user ServerConfig, env *EnvServerConfig) ServerConfig {
	out := user
	if out.HMR != nil {
		hmr := *out.HMR
		out.HMR = &hmr
	}

	if env != nil {
		if out.Host == "" {
			out.Host = env.Host
		}
		if out.HTTPS == nil {
			out.HTTPS = env.TLS
		}
		if !out.NoHMR {
			if out.HMR == nil {
				out.HMR = &HMRConfig{Host: env.HMRHost}
			} else if out.HMR.Host == "" {
				out.HMR.Host = env.HMRHost
			}
		}
	}

	if out.NoHMR {
		out.HMR = nil
	}
	if out.Origin == "" {
		out.Origin = PlaceholderOrigin
	}
	return out
}
