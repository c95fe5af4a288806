//go:build unix

package membuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAnonymousUnix(t *testing.T) {
	buf, release, err := Map(4096)
	require.NoError(t, err)
	require.Len(t, buf, 4096)

	// Pages are zeroed and writable.
	assert.Equal(t, byte(0), buf[0])
	buf[0] = 0xDE
	buf[4095] = 0xAD
	assert.Equal(t, byte(0xDE), buf[0])
	assert.Equal(t, byte(0xAD), buf[4095])

	require.NoError(t, release())
	assert.NoError(t, release(), "double release is a no-op")
}

func TestMapZeroLength(t *testing.T) {
	buf, release, err := Map(0)
	require.NoError(t, err)
	assert.Nil(t, buf)
	assert.Nil(t, release)
}
