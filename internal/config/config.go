package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	ThumbHeight            int    `toml:"thumb_height"`
	FolderMargin           int    `toml:"folder_margin"`
	PriorityLookahead      int    `toml:"priority_lookahead"`
	ScrollSettleMs         int    `toml:"scroll_settle_ms"`
	VisibleEdgeMs          int    `toml:"visible_edge_ms"`
	VisibleEdgeImmediateMs int    `toml:"visible_edge_immediate_ms"`
	InsertRetryMs          int    `toml:"insert_retry_ms"`
	InsertRetryLimit       int    `toml:"insert_retry_limit"`
	ShowCaptions           bool   `toml:"show_captions"`
	LogLevel               string `toml:"log_level"`
	LogFile                string `toml:"log_file"`

	Host     HostSettings     `toml:"host"`
	Terminal TerminalSettings `toml:"terminal"`
	Serve    ServeSettings    `toml:"serve"`
}

// HostSettings configures the local folder host used by the terminal frontend
type HostSettings struct {
	ImagePatterns  []string `toml:"image_patterns"`
	IgnorePatterns []string `toml:"ignore_patterns"`
	ShowHidden     bool     `toml:"show_hidden"`
	ProbeWorkers   int      `toml:"probe_workers"`
	Sort           string   `toml:"sort"` // name, date or size
}

// TerminalSettings sizes the terminal rendering, in cells
type TerminalSettings struct {
	TileWidth    int `toml:"tile_width"`
	TileHeight   int `toml:"tile_height"`
	FoldersWidth int `toml:"folders_width"`
}

// ServeSettings sizes the headless surfaces, in pixels, until the host reports a size
type ServeSettings struct {
	Width        int `toml:"width"`
	Height       int `toml:"height"`
	FoldersWidth int `toml:"folders_width"`
	TileGap      int `toml:"tile_gap"`
	FolderHeight int `toml:"folder_height"`
	HeaderHeight int `toml:"header_height"`
}

// ScrollSettle is the debounce used for viewport re-evaluation and settle re-scrolls
func (c *Config) ScrollSettle() time.Duration {
	return time.Duration(c.ScrollSettleMs) * time.Millisecond
}

func (c *Config) VisibleEdge() time.Duration {
	return time.Duration(c.VisibleEdgeMs) * time.Millisecond
}

func (c *Config) VisibleEdgeImmediate() time.Duration {
	return time.Duration(c.VisibleEdgeImmediateMs) * time.Millisecond
}

func (c *Config) InsertRetry() time.Duration {
	return time.Duration(c.InsertRetryMs) * time.Millisecond
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	filePath string
}

// NewConfigService creates a config service backed by the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "picbrowse", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, writing the defaults back when the file does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = DefaultConfig()
		if err := cs.Save(cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return cfg, err
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from the
// file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// normalize replaces out-of-range values with their defaults
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.ThumbHeight <= 0 {
		c.ThumbHeight = d.ThumbHeight
	}
	if c.FolderMargin <= 0 {
		c.FolderMargin = d.FolderMargin
	}
	if c.PriorityLookahead < 0 {
		c.PriorityLookahead = d.PriorityLookahead
	}
	if c.ScrollSettleMs <= 0 {
		c.ScrollSettleMs = d.ScrollSettleMs
	}
	if c.VisibleEdgeMs <= 0 {
		c.VisibleEdgeMs = d.VisibleEdgeMs
	}
	if c.VisibleEdgeImmediateMs <= 0 {
		c.VisibleEdgeImmediateMs = d.VisibleEdgeImmediateMs
	}
	if c.InsertRetryMs <= 0 {
		c.InsertRetryMs = d.InsertRetryMs
	}
	if c.InsertRetryLimit < 0 {
		c.InsertRetryLimit = d.InsertRetryLimit
	}
	if c.Host.ProbeWorkers <= 0 {
		c.Host.ProbeWorkers = d.Host.ProbeWorkers
	}
	switch c.Host.Sort {
	case "name", "date", "size":
	default:
		c.Host.Sort = d.Host.Sort
	}
	if c.Terminal.TileWidth <= 0 {
		c.Terminal.TileWidth = d.Terminal.TileWidth
	}
	if c.Terminal.TileHeight <= 0 {
		c.Terminal.TileHeight = d.Terminal.TileHeight
	}
	if c.Terminal.FoldersWidth <= 0 {
		c.Terminal.FoldersWidth = d.Terminal.FoldersWidth
	}
	if c.Serve.Width <= 0 || c.Serve.Height <= 0 {
		c.Serve.Width, c.Serve.Height = d.Serve.Width, d.Serve.Height
	}
	if c.Serve.FoldersWidth <= 0 {
		c.Serve.FoldersWidth = d.Serve.FoldersWidth
	}
	if c.Serve.TileGap < 0 {
		c.Serve.TileGap = d.Serve.TileGap
	}
	if c.Serve.FolderHeight <= 0 {
		c.Serve.FolderHeight = d.Serve.FolderHeight
	}
	if c.Serve.HeaderHeight < 0 {
		c.Serve.HeaderHeight = d.Serve.HeaderHeight
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ThumbHeight:            120,
		FolderMargin:           40,
		PriorityLookahead:      200,
		ScrollSettleMs:         200,
		VisibleEdgeMs:          100,
		VisibleEdgeImmediateMs: 10,
		InsertRetryMs:          200,
		InsertRetryLimit:       25,
		ShowCaptions:           true,
		LogLevel:               "info",
		LogFile:                "picbrowse.log",
		Host: HostSettings{
			ImagePatterns:  []string{"*.{jpg,jpeg,png,gif,bmp,tif,tiff,webp}", "*.{JPG,JPEG,PNG,GIF,BMP,TIF,TIFF,WEBP}"},
			IgnorePatterns: []string{},
			ProbeWorkers:   4,
			Sort:           "name",
		},
		Terminal: TerminalSettings{
			TileWidth:    18,
			TileHeight:   4,
			FoldersWidth: 32,
		},
		Serve: ServeSettings{
			Width:        1024,
			Height:       768,
			FoldersWidth: 240,
			TileGap:      8,
			FolderHeight: 24,
			HeaderHeight: 28,
		},
	}
}
