package source

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpan_Join(t *testing.T) {
	a := NewSpan(NewPosition(1, 5), NewPosition(1, 9))
	b := NewSpan(NewPosition(2, 1), NewPosition(2, 3))
	c := NewSpan(NewPosition(1, 6), NewPosition(1, 7))

	require.Equal(t, NewSpan(NewPosition(1, 5), NewPosition(2, 3)), a.Join(b))
	require.Equal(t, NewSpan(NewPosition(1, 5), NewPosition(2, 3)), b.Join(a))
	require.Equal(t, a, a.Join(c))
	require.Equal(t, a, a.Join(Span{}))
	require.Equal(t, a, Span{}.Join(a))
}

func TestSpan(t *testing.T) {
	s := NewSpan(NewPosition(3, 2), NewPosition(3, 8))
	require.Equal(t, "3:2-3:8", s.String())
	require.Equal(t, PointSpan(NewPosition(3, 2)), s.Start())
	require.Equal(t, PointSpan(NewPosition(3, 8)), s.End())
	require.False(t, s.IsZero())
	require.True(t, Span{}.IsZero())
	require.True(t, Position{}.IsZero())
}
