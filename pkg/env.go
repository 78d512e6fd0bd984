package pkg

import (
	"fmt"
	"net/url"
	"os"

	"github.com/mrrizkin/vite-plugin-backend/utils"
)

// Environment variables consumed during interactive serving.
const (
	EnvAppURL        = "APP_URL"
	EnvAssetURL      = "ASSET_URL"
	EnvDevServerKey  = "VITE_DEV_SERVER_KEY"
	EnvDevServerCert = "VITE_DEV_SERVER_CERT"
)

// EnvironmentError is a fatal misconfiguration of the process environment,
// raised while resolving the dev-server configuration.
type EnvironmentError struct {
	Reason string
}

func (e *EnvironmentError) Error() string {
	return "environment error: " + e.Reason
}

// OSEnviron collects the variables this package cares about from the process
// environment.
func OSEnviron() map[string]string {
	env := make(map[string]string)
	for _, key := range []string{EnvAppURL, EnvAssetURL, EnvDevServerKey, EnvDevServerCert} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env
}

// ResolveEnvServerConfig inspects the environment mapping and returns the
// HTTPS/host override for the dev server, or nil when no TLS pair is
// configured. Runs only for interactive serving, never for one-shot builds.
func ResolveEnvServerConfig(env map[string]string) (*EnvServerConfig, error) {
	keyPath := env[EnvDevServerKey]
	certPath := env[EnvDevServerCert]

	if keyPath == "" && certPath == "" {
		return nil, nil
	}
	if keyPath == "" {
		return nil, &EnvironmentError{Reason: fmt.Sprintf("%s is set but %s is not", EnvDevServerCert, EnvDevServerKey)}
	}
	if certPath == "" {
		return nil, &EnvironmentError{Reason: fmt.Sprintf("%s is set but %s is not", EnvDevServerKey, EnvDevServerCert)}
	}
	if err := utils.IsFileExist(keyPath); err != nil {
		return nil, &EnvironmentError{Reason: fmt.Sprintf("%s points to a missing file: %s", EnvDevServerKey, keyPath)}
	}
	if err := utils.IsFileExist(certPath); err != nil {
		return nil, &EnvironmentError{Reason: fmt.Sprintf("%s points to a missing file: %s", EnvDevServerCert, certPath)}
	}

	host, err := parseHost(env[EnvAppURL])
	if err != nil {
		return nil, err
	}

	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, &EnvironmentError{Reason: fmt.Sprintf("reading %s: %s", EnvDevServerKey, err)}
	}
	cert, err := os.ReadFile(certPath)
	if err != nil {
		return nil, &EnvironmentError{Reason: fmt.Sprintf("reading %s: %s", EnvDevServerCert, err)}
	}

	return &EnvServerConfig{
		Host:    host,
		HMRHost: host,
		TLS:     &TLSKeyPair{Key: key, Cert: cert},
	}, nil
}

func parseHost(appURL string) (string, error) {
	if appURL == "" {
		return "", &EnvironmentError{Reason: EnvAppURL + " must be set when dev-server TLS is configured"}
	}
	parsed, err := url.Parse(appURL)
	if err != nil {
		return "", &EnvironmentError{Reason: fmt.Sprintf("unable to parse %s %q: %s", EnvAppURL, appURL, err)}
	}
	if parsed.Hostname() == "" {
		return "", &EnvironmentError{Reason: fmt.Sprintf("%s %q has no host", EnvAppURL, appURL)}
	}
	return parsed.Hostname(), nil
}
