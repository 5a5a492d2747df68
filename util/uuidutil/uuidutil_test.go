package uuidutil

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDRandomGenerator(t *testing.T) {
	id, err := UUIDRandomGenerator{}.Generate()
	require.NoError(t, err)

	parsed, err := uuid.FromString(id)
	require.NoError(t, err)
	assert.Equal(t, byte(uuid.V4), parsed.Version())

	other, err := UUIDRandomGenerator{}.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}
