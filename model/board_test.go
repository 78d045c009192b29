package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBoard(t *testing.T) {
	text := `
# two rows, one empty slot
A B .

C  A  B
`
	g, err := ReadBoard(strings.NewReader(text), testOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, g.Cols)
	assert.Equal(t, 2, g.Rows)
	assert.Equal(t, Empty, g.CellAt(2, 0))
	assert.Equal(t, Symbol(3), g.CellAt(0, 1))
	assert.Equal(t, "A B .\nC A B\n", g.String())
	assert.Len(t, g.Layout().Tiles, 5)
}

func TestReadBoardMultiRuneGlyphs(t *testing.T) {
	opts := testOptions()
	opts.Alphabet = []string{"🍎", "🍇", "🍌"}
	g, err := ReadBoard(strings.NewReader("🍎 🍇\n🍌 🍎\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, Symbol(2), g.CellAt(1, 0))
	assert.Equal(t, "🍎 🍇\n🍌 🍎\n", g.String())
}

func TestReadBoardErrors(t *testing.T) {
	cases := map[string]string{
		"ragged rows":   "A B\nA\n",
		"unknown glyph": "A Z\n",
		"no rows":       "# nothing here\n\n",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadBoard(strings.NewReader(text), testOptions())
			assert.ErrorIs(t, err, ErrBadBoard)
		})
	}
}

func TestLoadBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.txt")
	require.NoError(t, os.WriteFile(path, []byte("A A\nB C\n"), 0o644))

	g, err := LoadBoard(path, testOptions())
	require.NoError(t, err)
	res := g.Tap(1, 0)
	assert.Len(t, res.Removed, 2)
	assert.Equal(t, ". .\nB C\n", g.String())

	_, err = LoadBoard(filepath.Join(t.TempDir(), "missing.txt"), testOptions())
	assert.Error(t, err)
}
