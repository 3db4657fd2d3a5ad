package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/chadlavi/draw-it/internal/canvas"
	"github.com/chadlavi/draw-it/internal/flags"
)

// Config represents the user's configuration
type Config struct {
	FlagStore        flags.Backend `json:"flag_store"`
	FlagStorePath    string        `json:"flag_store_path,omitempty"`
	OutputDir        string        `json:"output_dir"`
	CellWidthPx      int           `json:"cell_width_px"`
	BrushRadius      float64       `json:"brush_radius"`
	LazyRadius       float64       `json:"lazy_radius"`
	HideGrid         bool          `json:"hide_grid"`
	GridColor        string        `json:"grid_color,omitempty"`
	BackgroundImage  string        `json:"background_image,omitempty"`
	PromptsFile      string        `json:"prompts_file,omitempty"`
	LoadTimeOffsetMs int           `json:"load_time_offset_ms"`
	ImmediateLoading bool          `json:"immediate_loading"`
	Debug            bool          `json:"debug"`
	LogFile          string        `json:"log_file,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		FlagStore:        flags.BackendFile,
		OutputDir:        ".",
		CellWidthPx:      8,
		BrushRadius:      2,
		LazyRadius:       0,
		HideGrid:         true,
		GridColor:        "rgba(150,150,150,0.17)",
		LoadTimeOffsetMs: 5,
	}
}

// globalConfigDir returns the global config directory path (~/.draw-it)
func globalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".draw-it"), nil
}

// globalConfigPath returns the global config file path (~/.draw-it/config.json)
func globalConfigPath() (string, error) {
	dir, err := globalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// projectConfigPath returns the project-level config path (.draw-it/config.json in cwd)
func projectConfigPath() string {
	return filepath.Join(".draw-it", "config.json")
}

// Load reads the config, checking an explicit path first, then the project
// config, then the global one. Missing files fall back to defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)
	if err := cfg.fillPaths(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	if path != "" {
		return readConfig(path)
	}

	// Try project config first (.draw-it/config.json in current directory)
	if _, err := os.Stat(projectConfigPath()); err == nil {
		return readConfig(projectConfigPath())
	}

	// Fall back to global config (~/.draw-it/config.json)
	globalPath, err := globalConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	cfg, err := readConfig(globalPath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config exists, return default (don't auto-create)
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// readConfig decodes path on top of the defaults so omitted fields keep
// their default values.
func readConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// fillPaths resolves the default flag store and log locations.
func (c *Config) fillPaths() error {
	if c.FlagStorePath != "" && c.LogFile != "" {
		return nil
	}
	dir, err := globalConfigDir()
	if err != nil {
		if c.FlagStore == flags.BackendMemory {
			return nil
		}
		return fmt.Errorf("resolve config directory: %w", err)
	}
	if c.FlagStorePath == "" {
		switch c.FlagStore {
		case flags.BackendSQLite:
			c.FlagStorePath = filepath.Join(dir, "flags.db")
		default:
			c.FlagStorePath = filepath.Join(dir, "flags.json")
		}
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dir, "logs", "draw-it.log")
	}
	return nil
}

func (c *Config) validate() error {
	switch c.FlagStore {
	case flags.BackendFile, flags.BackendSQLite, flags.BackendMemory:
	default:
		return fmt.Errorf("flag_store must be file, sqlite or memory, got %q", c.FlagStore)
	}
	if c.CellWidthPx < 1 || c.CellWidthPx > 64 {
		return fmt.Errorf("cell_width_px must be between 1 and 64, got %d", c.CellWidthPx)
	}
	if c.BrushRadius <= 0 {
		return fmt.Errorf("brush_radius must be positive, got %g", c.BrushRadius)
	}
	if c.LazyRadius < 0 {
		return fmt.Errorf("lazy_radius must not be negative, got %g", c.LazyRadius)
	}
	if c.LoadTimeOffsetMs < 0 {
		return fmt.Errorf("load_time_offset_ms must not be negative, got %d", c.LoadTimeOffsetMs)
	}
	if c.GridColor != "" {
		if _, err := canvas.ParseColor(c.GridColor); err != nil {
			return fmt.Errorf("grid_color: %w", err)
		}
	}
	return nil
}

// CanvasBase returns the surface configuration described by c, without a
// size or brush color.
func (c *Config) CanvasBase() canvas.Config {
	base := canvas.DefaultConfig(0)
	base.BrushRadius = c.BrushRadius
	base.LazyRadius = c.LazyRadius
	base.HideGrid = c.HideGrid
	if c.GridColor != "" {
		base.GridColor = c.GridColor
	}
	base.BackgroundImageURL = c.BackgroundImage
	base.ImmediateLoading = c.ImmediateLoading
	base.LoadTimeOffset = time.Duration(c.LoadTimeOffsetMs) * time.Millisecond
	return base
}

// Overrides are command-line values layered over a loaded config. Zero
// values leave the config as it is.
type Overrides struct {
	FlagStore       flags.Backend
	OutputDir       string
	BackgroundImage string
	Debug           bool
}

// Apply layers o over c and validates the result. Switching the flag store
// backend drops the old store path in favor of the new backend's default.
func (c *Config) Apply(o Overrides) error {
	if o.FlagStore != "" && o.FlagStore != c.FlagStore {
		c.FlagStore = o.FlagStore
		c.FlagStorePath = ""
		if err := c.fillPaths(); err != nil {
			return err
		}
	}
	if o.OutputDir != "" {
		c.OutputDir = o.OutputDir
	}
	if o.BackgroundImage != "" {
		c.BackgroundImage = o.BackgroundImage
	}
	if o.Debug {
		c.Debug = true
	}
	return c.validate()
}

// GlobalPath returns the location Save writes to.
func GlobalPath() (string, error) {
	return globalConfigPath()
}

// Save writes the config to the global location (~/.draw-it/config.json)
func Save(cfg *Config) error {
	dir, err := globalConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := globalConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func applyEnv(c *Config) {
	c.FlagStore = flags.Backend(envStr("DRAW_IT_FLAG_STORE", string(c.FlagStore)))
	c.FlagStorePath = envStr("DRAW_IT_FLAG_STORE_PATH", c.FlagStorePath)
	c.OutputDir = envStr("DRAW_IT_OUTPUT_DIR", c.OutputDir)
	c.CellWidthPx = envInt("DRAW_IT_CELL_WIDTH_PX", c.CellWidthPx)
	c.BackgroundImage = envStr("DRAW_IT_BACKGROUND_IMAGE", c.BackgroundImage)
	c.PromptsFile = envStr("DRAW_IT_PROMPTS_FILE", c.PromptsFile)
	c.Debug = envBool("DRAW_IT_DEBUG", c.Debug)
	c.LogFile = envStr("DRAW_IT_LOG_FILE", c.LogFile)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}
