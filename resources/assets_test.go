package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogosAreEmbedded(t *testing.T) {
	for _, name := range []string{IconActive, IconPaused, IconIdle} {
		resource, err := Logo(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, resource.Name())
		assert.NotEmpty(t, resource.Content())

		again, err := Logo(name)
		require.NoError(t, err)
		assert.Same(t, resource, again)
	}
}

func TestLogoMissing(t *testing.T) {
	_, err := Logo("nope.png")
	assert.Error(t, err)
	assert.Panics(t, func() { MustLogo("nope.png") })
}
