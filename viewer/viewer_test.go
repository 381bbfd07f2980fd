package viewer_test

import (
	"testing"

	"github.com/automoto/fightcore/match"
	"github.com/automoto/fightcore/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	m, err := match.New(match.Options{})
	require.NoError(t, err)

	lines := viewer.Lines(m)
	require.Len(t, lines, 3)
	assert.Equal(t, "frame 0", lines[0])
	assert.Contains(t, lines[1], "P1 Neutral")
	assert.Contains(t, lines[1], "hp 100")
	assert.Contains(t, lines[2], "P2 Neutral")

	m.Run(3)
	assert.Equal(t, "frame 3", viewer.Lines(m)[0])
}
