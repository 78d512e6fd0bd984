package vite

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
)

// ErrNotListening is returned when the dev-server URL is read before the
// listening transition.
var ErrNotListening = errors.New("dev server is not listening yet")

type lifecycleState int

const (
	stateIdle lifecycleState = iota
	stateListening
	stateTornDown
)

// Lifecycle owns the hot file: written the instant the dev server socket is
// listening, removed when the process goes away by any means.
type Lifecycle struct {
	mu      sync.Mutex
	state   lifecycleState
	hotFile string
	url     string
	logger  zerolog.Logger
}

func newLifecycle(hotFile string, logger zerolog.Logger) *Lifecycle {
	return &Lifecycle{hotFile: hotFile, logger: logger}
}

// Listening records the resolved dev-server URL and publishes it through the
// hot file. Fires at most once per process lifetime.
func (l *Lifecycle) Listening(url string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == stateListening {
		return fmt.Errorf("dev server already listening at %s", l.url)
	}
	if err := os.MkdirAll(filepath.Dir(l.hotFile), 0755); err != nil {
		return fmt.Errorf("creating hot file directory: %w", err)
	}
	if err := os.WriteFile(l.hotFile, []byte(url), 0644); err != nil {
		return fmt.Errorf("writing hot file: %w", err)
	}
	l.state = stateListening
	l.url = url
	l.logger.Info().Str("url", url).Msg("Dev server listening")
	return nil
}

// URL returns the resolved dev-server URL, or ErrNotListening before the
// listening transition.
func (l *Lifecycle) URL() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != stateListening {
		return "", ErrNotListening
	}
	return l.url, nil
}

// Teardown retracts the hot file. Idempotent: a missing file is a no-op, and
// calling it again after teardown does nothing.
func (l *Lifecycle) Teardown() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.Remove(l.hotFile); err != nil && !os.IsNotExist(err) {
		l.logger.Err(err).Msg("Failed to remove hot file")
	}
	l.state = stateTornDown
}

var exitHandlerOnce sync.Once

// RegisterExitHandlers installs SIGINT/SIGTERM/SIGHUP handlers that run the
// teardown synchronously before the process exits. Safe to call any number of
// times within one process; the handlers attach once.
func (l *Lifecycle) RegisterExitHandlers() {
	exitHandlerOnce.Do(func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		go func() {
			<-sigCh
			l.Teardown()
			os.Exit(0)
		}()
	})
}
