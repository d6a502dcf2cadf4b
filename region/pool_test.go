package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolGetReuse(t *testing.T) {
	pool := NewPool()

	a, err := pool.Get(1024)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Size())

	_, err = a.Grow(512)
	require.NoError(t, err)
	a.Release(pool)

	a2, err := pool.Get(1024)
	require.NoError(t, err)
	assert.Equal(t, 0, a2.Size())
}

func TestPoolGetInvalid(t *testing.T) {
	pool := NewPool()
	_, err := pool.Get(0)
	assert.Error(t, err)
}
