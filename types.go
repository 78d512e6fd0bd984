package vite

import (
	esbuild "github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog"

	"github.com/mrrizkin/vite-plugin-backend/pkg"
)

// TransformFunc post-processes served output once the dev-server URL is known.
type TransformFunc func(code string, devServerURL string) string

type Config struct {
	// Name identifies the plugin in logs. Defaults to "backend".
	Name string

	// Input lists the bundler entry points, in order. Required.
	Input []string

	// PublicDirectory is the web root the backend serves. Defaults to
	// "public"; leading and trailing slashes are stripped.
	PublicDirectory string

	// BuildDirectory is where built assets land, nested under the public
	// directory. Defaults to "build"; slashes are stripped.
	BuildDirectory string

	// HotFile marks a running dev server and carries its URL. Defaults to
	// <PublicDirectory>/hot.
	HotFile string

	// DetectTLS is reserved for local-certificate autodetection. Stored as
	// given; no resolution logic reads it yet.
	DetectTLS string

	// Refresh lists extra paths (server templates and the like) whose
	// changes trigger a full browser reload during serve.
	Refresh []string

	// TransformOnServe runs over served output after the dev-server URL has
	// been substituted in. Defaults to the identity function.
	TransformOnServe TransformFunc

	// Server carries explicit dev-server overrides (host, origin, HMR,
	// TLS). User-set fields always win over environment-derived values.
	Server pkg.ServerConfig

	// BuildOptions are the user's own bundler settings. Anything set here
	// is passed through untouched; the plugin only fills the gaps.
	BuildOptions esbuild.BuildOptions
}

type mode int

const (
	modeIdle mode = iota
	modeBuild
	modeServe
)

// Plugin wires a backend application to the bundler's dev server and
// production build.
type Plugin struct {
	Logger zerolog.Logger
	Config Config

	mode      mode
	lifecycle *Lifecycle
	manifests *pkg.Manager
}
