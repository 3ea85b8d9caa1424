package idx_test

import (
	"testing"
	"time"

	"github.com/opencouncil/deskd/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	a := idx.New()
	b := idx.New()

	require.False(t, a.IsZero())
	require.NotEqual(t, a, b)
	require.Len(t, a.String(), 26)

	t.Run("monotonic within the same instant", func(t *testing.T) {
		at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		first := idx.NewAt(at)
		second := idx.NewAt(at)
		require.Less(t, first.String(), second.String())
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	valid := idx.New()

	t.Run("round trip", func(t *testing.T) {
		parsed, err := idx.Parse(valid.String())
		require.NoError(t, err)
		require.Equal(t, valid, parsed)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		parsed, err := idx.Parse("  " + valid.String() + " ")
		require.NoError(t, err)
		require.Equal(t, valid, parsed)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, s := range []string{"", "not-a-ulid", "0000"} {
			_, err := idx.Parse(s)
			require.ErrorIs(t, err, idx.ErrInvalid)
		}
	})
}

func TestTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id := idx.NewAt(at)

	require.WithinDuration(t, at, id.Time(), time.Millisecond)
	require.True(t, idx.Zero.Time().IsZero())
}
