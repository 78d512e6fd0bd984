package pkg

// PlaceholderOrigin is the provisional server origin written into build
// configuration before the dev server socket exists. Once the real address is
// known it is swapped for the resolved URL in every emitted chunk.
const PlaceholderOrigin = "http://__vite_backend_placeholder__.test"

// ManifestFileName is the file the backend reads to map entry points to
// hashed build output.
const ManifestFileName = "manifest.json"

type HMRConfig struct {
	Protocol   string
	Host       string
	ClientPort int
}

type TLSKeyPair struct {
	Key  []byte
	Cert []byte
}

// ServerConfig is the effective dev-server configuration after merging user
// values with environment-derived overrides. Origin stays empty until the
// lifecycle finalizes it, unless the user forced one.
type ServerConfig struct {
	Host   string
	Origin string
	HTTPS  *TLSKeyPair
	HMR    *HMRConfig
	NoHMR  bool
}

// EnvServerConfig is the optional override derived from the environment when
// a dev-server TLS key and certificate pair is configured.
type EnvServerConfig struct {
	Host    string
	HMRHost string
	TLS     *TLSKeyPair
}
