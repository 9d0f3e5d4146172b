package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScript_Parse(t *testing.T) {
	src := `
# warm up
brush fallback
size 30   # bigger
sv 0.5 1
down 10 20.5
MOVE 11 21
up
load brushes/my brush.png
`
	cmds, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cmds, 7)

	assert.Equal(t, Command{Name: "brush", Text: "fallback", Line: 3}, cmds[0])
	assert.Equal(t, Command{Name: "size", Nums: []float64{30}, Line: 4}, cmds[1])
	assert.Equal(t, []float64{0.5, 1}, cmds[2].Nums)
	assert.Equal(t, []float64{10, 20.5}, cmds[3].Nums)
	assert.Equal(t, "move", cmds[4].Name)
	assert.Equal(t, "up", cmds[5].Name)
	assert.Equal(t, "brushes/my brush.png", cmds[6].Text)
}

func TestScript_ParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		line int
	}{
		{"up\njump 1 2", 2},
		{"down 1", 1},
		{"\n\nmove a b", 3},
		{"undo\nbrush", 2},
		{"size 1 2", 1},
	}
	for _, tt := range tests {
		_, err := Parse(strings.NewReader(tt.src))
		require.Error(t, err, tt.src)

		var serr *SyntaxError
		require.True(t, errors.As(err, &serr), tt.src)
		assert.Equal(t, tt.line, serr.Line, tt.src)
	}
}

func TestScript_ParseEmpty(t *testing.T) {
	cmds, err := Parse(strings.NewReader("# nothing here\n\n"))
	assert.NoError(t, err)
	assert.Empty(t, cmds)
}
