package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	t.Run("known roles", func(t *testing.T) {
		for raw, want := range map[string]Role{
			"user":  RoleUser,
			"staff": RoleStaff,
			"admin": RoleAdmin,
		} {
			got, err := ParseRole(raw)
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	})

	t.Run("empty defaults to user", func(t *testing.T) {
		got, err := ParseRole("")
		require.NoError(t, err)
		require.Equal(t, RoleUser, got)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := ParseRole("superadmin")
		require.ErrorIs(t, err, ErrUnknownRole)
	})

	t.Run("no case folding", func(t *testing.T) {
		_, err := ParseRole("Admin")
		require.ErrorIs(t, err, ErrUnknownRole)
	})
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]Status{
		"open":        StatusOpen,
		"assigned":    StatusAssigned,
		"in-progress": StatusInProgress,
		"resolved":    StatusResolved,
	} {
		got, err := ParseStatus(raw)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	t.Run("unknown status", func(t *testing.T) {
		_, err := ParseStatus("closed")
		require.ErrorIs(t, err, ErrUnknownStatus)
	})

	t.Run("empty status", func(t *testing.T) {
		_, err := ParseStatus("")
		require.ErrorIs(t, err, ErrUnknownStatus)
	})
}
