package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psat-tools/psat-server/logger"
)

func TestStoreSaveAndGet(t *testing.T) {
	s := NewStore(time.Minute, time.Minute, logger.NewGlogLogger())

	_, ok := s.Get("missing")
	assert.False(t, ok)

	r := &Report{ID: "r1", PageURL: "https://example.com"}
	s.Save(r)

	got, ok := s.Get("r1")
	require.True(t, ok)
	assert.Same(t, r, got)
	assert.Equal(t, 1, s.Len())
}

func TestStoreSaveNil(t *testing.T) {
	s := NewStore(time.Minute, time.Minute, logger.NewGlogLogger())
	s.Save(nil)
	assert.Equal(t, 0, s.Len())
}

func TestStoreExpiry(t *testing.T) {
	s := NewStore(20*time.Millisecond, 0, logger.NewGlogLogger())
	s.Save(&Report{ID: "r1"})

	assert.Eventually(t, func() bool {
		_, ok := s.Get("r1")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
