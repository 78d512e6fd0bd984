package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackPageSubstitutesAppURL(t *testing.T) {
	page, err := FallbackPage("http://myapp.test")
	require.NoError(t, err)
	assert.Contains(t, page, `href="http://myapp.test"`)
}

func TestFallbackPageWithoutAppURL(t *testing.T) {
	page, err := FallbackPage("")
	require.NoError(t, err)
	assert.Contains(t, page, "http://localhost")
}
