// Package config resolves settings from built-in defaults, a .env file,
// BLOCKFALL_* environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/qnkhuat/blockfall/pkg/mino"
	"github.com/qnkhuat/blockfall/pkg/store"
)

const (
	EnvPrefix  = "BLOCKFALL_"
	DefaultEnv = ".env"

	ThemeClassic = "classic"
)

type Config struct {
	Width  int
	Height int
	Tick   float64 // Frames per automatic drop
	FPS    int
	Seed   int64 // 0 seeds from the clock

	Randomizer string
	Store      string
	StorePath  string

	Log      string
	LogLevel string

	Theme     string
	ThemeFile string

	Matrix []int

	Scale int // Canvas pixels per cell
	Cell  int // Terminal columns per cell
}

func Default() *Config {
	return &Config{
		Width:      10,
		Height:     20,
		Tick:       120,
		FPS:        60,
		Randomizer: mino.RandomizerUniform,
		Store:      store.KindFile,
		Log:        filepath.Join(os.TempDir(), "blockfall.log"),
		LogLevel:   "info",
		Theme:      ThemeClassic,
		Scale:      30,
		Cell:       2,
	}
}

// Load builds the configuration for the program called name. A missing env
// file is not an error.
func Load(name string, envFile string, args []string) (*Config, error) {
	c := Default()

	dotenv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		if err == nil {
			dotenv = m
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := dotenv[EnvPrefix+key]
		return v, ok
	}
	if err := c.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := c.parseFlags(name, args); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"WIDTH":  &c.Width,
		"HEIGHT": &c.Height,
		"FPS":    &c.FPS,
		"SCALE":  &c.Scale,
		"CELL":   &c.Cell,
	}
	for key, dst := range ints {
		v, ok := lookup(key)
		if !ok {
			continue
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, key, v, err)
		}
		*dst = n
	}

	strs := map[string]*string{
		"RANDOMIZER": &c.Randomizer,
		"STORE":      &c.Store,
		"STORE_PATH": &c.StorePath,
		"LOG":        &c.Log,
		"LOG_LEVEL":  &c.LogLevel,
		"THEME":      &c.Theme,
		"THEME_FILE": &c.ThemeFile,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	if v, ok := lookup("TICK"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %sTICK %q: %w", EnvPrefix, v, err)
		}
		c.Tick = f
	}

	if v, ok := lookup("SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sSEED %q: %w", EnvPrefix, v, err)
		}
		c.Seed = n
	}

	if v, ok := lookup("MATRIX"); ok {
		m, err := ParseMatrix(v)
		if err != nil {
			return err
		}
		c.Matrix = m
	}

	return nil
}

func (c *Config) parseFlags(name string, args []string) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.IntVar(&c.Width, "width", c.Width, "board width")
	fs.IntVar(&c.Height, "height", c.Height, "board height")
	fs.Float64Var(&c.Tick, "tick", c.Tick, "frames between automatic drops")
	fs.IntVar(&c.FPS, "fps", c.FPS, "frames per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 seeds from the clock)")
	fs.StringVar(&c.Randomizer, "randomizer", c.Randomizer, "piece randomizer: uniform or bag")
	fs.StringVar(&c.Store, "store", c.Store, "high score store: file, sqlite or memory")
	fs.StringVar(&c.StorePath, "store-path", c.StorePath, "high score store location")
	fs.StringVar(&c.Log, "log", c.Log, "log file path (empty disables logging)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level")
	fs.StringVar(&c.Theme, "theme", c.Theme, "color theme")
	fs.StringVar(&c.ThemeFile, "theme-file", c.ThemeFile, "JSON file with additional themes")
	fs.IntVar(&c.Scale, "scale", c.Scale, "canvas pixels per cell")
	fs.IntVar(&c.Cell, "cell", c.Cell, "terminal columns per cell")

	matrix := FormatMatrix(c.Matrix)
	fs.StringVar(&matrix, "matrix", matrix, "pre-fill board cells as x,y,x,y,...")

	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := ParseMatrix(matrix)
	if err != nil {
		return err
	}
	c.Matrix = m

	return nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid board size %dx%d", c.Width, c.Height)
	} else if c.Tick <= 0 {
		return fmt.Errorf("invalid tick %v", c.Tick)
	} else if c.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", c.FPS)
	} else if c.Scale <= 0 {
		return fmt.Errorf("invalid scale %d", c.Scale)
	} else if c.Cell != 1 && c.Cell != 2 {
		return fmt.Errorf("invalid cell width %d: must be 1 or 2", c.Cell)
	}

	switch c.Randomizer {
	case mino.RandomizerUniform, mino.RandomizerBag:
	default:
		return fmt.Errorf("unknown randomizer %q", c.Randomizer)
	}

	switch c.Store {
	case store.KindFile, store.KindSQLite, store.KindMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}

	if len(c.Matrix)%2 != 0 {
		return fmt.Errorf("matrix has an odd number of coordinates: %d", len(c.Matrix))
	}
	for i := 0; i < len(c.Matrix); i += 2 {
		x, y := c.Matrix[i], c.Matrix[i+1]
		if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
			return fmt.Errorf("matrix cell (%d,%d) outside %dx%d board", x, y, c.Width, c.Height)
		}
	}

	return nil
}

// StoreLocation returns StorePath, or a per-user default for the chosen
// store kind.
func (c *Config) StoreLocation() string {
	if c.StorePath != "" {
		return c.StorePath
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	dir = filepath.Join(dir, "blockfall")

	if c.Store == store.KindSQLite {
		return filepath.Join(dir, "blockfall.db")
	}
	return filepath.Join(dir, "highscore.json")
}

// ParseMatrix parses a comma separated list of x,y pairs.
func ParseMatrix(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	tokens := strings.Split(s, ",")
	if len(tokens)%2 != 0 {
		return nil, fmt.Errorf("matrix has an odd number of coordinates: %d", len(tokens))
	}

	m := make([]int, len(tokens))
	for i, token := range tokens {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return nil, fmt.Errorf("failed to parse matrix token #%d %q", i, token)
		}
		m[i] = n
	}

	return m, nil
}

func FormatMatrix(m []int) string {
	tokens := make([]string, len(m))
	for i, n := range m {
		tokens[i] = strconv.Itoa(n)
	}

	return strings.Join(tokens, ",")
}
