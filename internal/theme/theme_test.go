package theme

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetFallsBack(t *testing.T) {
	require.Equal(t, "amber", Get("AMBER").Name)
	require.Equal(t, DefaultName, Get("neon").Name)
	require.True(t, Has(" blue "))
	require.False(t, Has("neon"))
}

func TestNamesSorted(t *testing.T) {
	require.Equal(t, []string{"amber", "blue", "robco_green", "white"}, Names())
}
