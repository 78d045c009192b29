package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const emptyToken = "."

// LoadBoard reads a board file, see ReadBoard.
func LoadBoard(path string, opts Options) (*Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open board %s: %w", path, err)
	}
	defer file.Close()
	return ReadBoard(file, opts)
}

// ReadBoard reads a text board: one line per row, top row first, cells are
// whitespace separated glyphs of opts.Alphabet and "." marks an empty slot.
// Blank lines and lines starting with '#' are skipped. The board dimensions
// override opts.Cols and opts.Rows.
func ReadBoard(reader io.Reader, opts Options) (*Grid, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	rows := make([][]Symbol, 0)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		tokens := strings.Fields(s)
		line := make([]Symbol, 0, len(tokens))
		for _, token := range tokens {
			if token == emptyToken {
				line = append(line, Empty)
				continue
			}
			sym, ok := symbolOf(opts.Alphabet, token)
			if !ok {
				return nil, fmt.Errorf("%w: line %d: glyph %q not in alphabet %v", ErrBadBoard, lineNo, token, opts.Alphabet)
			}
			line = append(line, sym)
		}
		if len(rows) > 0 && len(line) != len(rows[0]) {
			return nil, fmt.Errorf("%w: line %d has %d cells, expected %d", ErrBadBoard, lineNo, len(line), len(rows[0]))
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadBoard)
	}
	return NewGridFromRows(opts, rows)
}

// String renders the grid in the ReadBoard format.
func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			s := g.Matrix[c][r]
			if s == Empty {
				b.WriteString(emptyToken)
			} else {
				b.WriteString(g.Glyph(s))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
