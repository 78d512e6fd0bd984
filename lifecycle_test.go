package vite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleHotFileRoundTrip(t *testing.T) {
	hotFile := filepath.Join(t.TempDir(), "public", "hot")
	l := newLifecycle(hotFile, zerolog.Nop())

	_, err := l.URL()
	assert.ErrorIs(t, err, ErrNotListening)
	assert.NoFileExists(t, hotFile)

	const url = "http://127.0.0.1:5173"
	require.NoError(t, l.Listening(url))

	contents, err := os.ReadFile(hotFile)
	require.NoError(t, err)
	assert.Equal(t, url, string(contents))

	got, err := l.URL()
	require.NoError(t, err)
	assert.Equal(t, url, got)

	l.Teardown()
	assert.NoFileExists(t, hotFile)

	// Idempotent: a second teardown with no file is a no-op.
	l.Teardown()
	assert.NoFileExists(t, hotFile)
}

func TestLifecycleListeningFiresOnce(t *testing.T) {
	l := newLifecycle(filepath.Join(t.TempDir(), "hot"), zerolog.Nop())
	require.NoError(t, l.Listening("http://127.0.0.1:5173"))
	assert.Error(t, l.Listening("http://127.0.0.1:4000"))
}

func TestLifecycleURLAfterTeardown(t *testing.T) {
	l := newLifecycle(filepath.Join(t.TempDir(), "hot"), zerolog.Nop())
	require.NoError(t, l.Listening("http://127.0.0.1:5173"))
	l.Teardown()

	_, err := l.URL()
	assert.ErrorIs(t, err, ErrNotListening)
}

func TestLifecycleRegisterExitHandlersIdempotent(t *testing.T) {
	l := newLifecycle(filepath.Join(t.TempDir(), "hot"), zerolog.Nop())
	l.RegisterExitHandlers()
	l.RegisterExitHandlers()
}
