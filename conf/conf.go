// Package conf loads the fruitfall configuration from an HCL file.
//
//	log_level    = "debug"
//	inspect_addr = ":8080"
//	board        = "boards/columns.txt"
//
//	grid {
//	  columns   = 6
//	  rows      = 10
//	  tile_size = env.TILE_SIZE
//	  symbols   = ["♠", "♥", "♦"]
//	  seed      = 42
//	}
//
// Every attribute is optional and falls back to Default. The process
// environment is available as the env object.
package conf

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	log "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"
	"github.com/zucenko/fruitfall/model"
)

type Config struct {
	LogLevel    string
	InspectAddr string
	Board       string
	Grid        Grid
}

type Grid struct {
	Columns  int
	Rows     int
	TileSize int
	Symbols  []string
	// Seed 0 seeds from the clock.
	Seed int64
}

// hclFile mirrors the file layout; nil means "not set".
type hclFile struct {
	LogLevel    *string  `hcl:"log_level,optional"`
	InspectAddr *string  `hcl:"inspect_addr,optional"`
	Board       *string  `hcl:"board,optional"`
	Grid        *hclGrid `hcl:"grid,block"`
}

type hclGrid struct {
	Columns  *int     `hcl:"columns,optional"`
	Rows     *int     `hcl:"rows,optional"`
	TileSize *int     `hcl:"tile_size,optional"`
	Symbols  []string `hcl:"symbols,optional"`
	Seed     *int64   `hcl:"seed,optional"`
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Grid: Grid{
			Columns:  model.DefaultCols,
			Rows:     model.DefaultRows,
			TileSize: model.DefaultTileSize,
			Symbols:  append([]string(nil), model.DefaultAlphabet...),
		},
	}
}

// Load reads and validates the file at path. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source over the defaults and validates the result.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, evalContext(), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}

	c := Default()
	c.merge(&parsed)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	log.Debugf("conf.Parse %s: %+v", filename, *c)
	return c, nil
}

func (c *Config) merge(f *hclFile) {
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.InspectAddr != nil {
		c.InspectAddr = *f.InspectAddr
	}
	if f.Board != nil {
		c.Board = *f.Board
	}
	g := f.Grid
	if g == nil {
		return
	}
	if g.Columns != nil {
		c.Grid.Columns = *g.Columns
	}
	if g.Rows != nil {
		c.Grid.Rows = *g.Rows
	}
	if g.TileSize != nil {
		c.Grid.TileSize = *g.TileSize
	}
	if g.Symbols != nil {
		c.Grid.Symbols = g.Symbols
	}
	if g.Seed != nil {
		c.Grid.Seed = *g.Seed
	}
}

// evalContext exposes the process environment as env.NAME.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 && utf8.ValidString(pair[0]) && utf8.ValidString(pair[1]) {
			vars[pair[0]] = cty.StringVal(pair[1])
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidConfig, err)
	}
	return c.GridOptions().Validate()
}

func (c *Config) GridOptions() model.Options {
	return model.Options{
		Cols:     c.Grid.Columns,
		Rows:     c.Grid.Rows,
		TileSize: c.Grid.TileSize,
		Alphabet: append([]string(nil), c.Grid.Symbols...),
	}
}

func (c *Config) Rand() *rand.Rand {
	seed := c.Grid.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewGrid deals a random board, or reads the configured board file.
func (c *Config) NewGrid() (*model.Grid, error) {
	if c.Board != "" {
		return model.LoadBoard(c.Board, c.GridOptions())
	}
	return model.NewGrid(c.GridOptions(), c.Rand())
}

// SetupLogging points logrus at out with the configured level.
func (c *Config) SetupLogging(out io.Writer) error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	log.SetOutput(out)
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return nil
}
