package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/fruitfall/conf"
	"github.com/zucenko/fruitfall/server"
)

func newTestServer(t *testing.T, symbols ...string) *Server {
	t.Helper()
	c := conf.Default()
	c.Grid.Columns, c.Grid.Rows = 3, 3
	c.Grid.Symbols = symbols
	c.Grid.Seed = 3
	s := &Server{Config: c, Inspector: server.NewInspector(), rnd: rand.New(rand.NewSource(1))}
	require.NoError(t, s.deal())
	return s
}

func TestStepClearsSingleSymbolBoard(t *testing.T) {
	s := newTestServer(t, "A")
	require.Equal(t, 9, s.Grid.Count())

	require.NoError(t, s.step())
	assert.Equal(t, 0, s.Grid.Count())
	assert.Equal(t, 1, s.Grid.Layout().Runs)

	require.NoError(t, s.step())
	assert.Equal(t, 9, s.Grid.Count(), "an empty board is dealt again")
	assert.Equal(t, 0, s.Grid.Layout().Runs)
}

func TestStepRedealsAfterIdleTaps(t *testing.T) {
	s := newTestServer(t, "A", "B")
	s.idleTaps = maxIdleTaps
	first := s.Grid
	require.NoError(t, s.step())
	assert.NotSame(t, first, s.Grid)
	assert.Equal(t, 0, s.idleTaps)
}

func TestDealPublishes(t *testing.T) {
	s := newTestServer(t, "A", "B", "C")
	select {
	case l := <-s.Inspector.Layouts:
		assert.Equal(t, 3, l.Cols)
		assert.Len(t, l.Tiles, 9)
	default:
		t.Fatal("deal did not publish")
	}
}
