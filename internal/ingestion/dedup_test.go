package ingestion

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDuplicateFilter_Unbounded(t *testing.T) {
	f := NewDuplicateFilter(0)
	id := uuid.New()

	require.False(t, f.Seen(id))
	f.Mark(id)
	f.Mark(id)
	require.True(t, f.Seen(id))
	require.Equal(t, 1, f.Len())
	require.False(t, f.Saturated())

	f.Forget(id)
	require.False(t, f.Seen(id))
}

func TestDuplicateFilter_BoundedStopsRecording(t *testing.T) {
	f := NewDuplicateFilter(2)
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	f.Mark(a)
	f.Mark(b)
	require.True(t, f.Saturated())

	f.Mark(c)
	require.Equal(t, 2, f.Len())
	require.True(t, f.Seen(a))
	require.True(t, f.Seen(b))
	require.False(t, f.Seen(c))
}
