package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/juju/loggo"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var logger = loggo.GetLogger("gol.utils")

// Size is a grid size offered by the menu
type Size struct {
	Rows int `json:"rows" yaml:"rows"`
	Cols int `json:"cols" yaml:"cols"`
}

func (s Size) String() string {
	return strconv.Itoa(s.Rows) + "x" + strconv.Itoa(s.Cols)
}

// Config holds the configuration for the game
type Config struct {
	Rows        int           `json:"rows" yaml:"rows"`
	Cols        int           `json:"cols" yaml:"cols"`
	Presets     []Size        `json:"presets" yaml:"presets"`
	FrameDelay  time.Duration `json:"frame_delay" yaml:"frame_delay"`
	ClearScreen bool          `json:"clear_screen" yaml:"clear_screen"`
	ShowNumbers bool          `json:"show_numbers" yaml:"show_numbers"`
	Seed        int64         `json:"seed" yaml:"seed"` // 0 seeds from the clock
	HistorySize int           `json:"history_size" yaml:"history_size"`
	LogLevel    string        `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rows: 20,
		Cols: 50,
		Presets: []Size{
			{Rows: 10, Cols: 10},
			{Rows: 20, Cols: 20},
			{Rows: 20, Cols: 50},
		},
		FrameDelay:  500 * time.Millisecond,
		ClearScreen: true,
		ShowNumbers: true,
		HistorySize: 5,
		LogLevel:    "<root>=WARNING",
	}
}

// DefaultSize returns the configured initial grid size
func (c Config) DefaultSize() Size {
	return Size{Rows: c.Rows, Cols: c.Cols}
}

// Validate checks that the configuration can start a game
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return errors.Errorf("[Validate] grid size must be positive, got %dx%d", c.Rows, c.Cols)
	}
	if len(c.Presets) == 0 {
		return errors.New("[Validate] at least one preset grid size is required")
	}
	for i, p := range c.Presets {
		if p.Rows <= 0 || p.Cols <= 0 {
			return errors.Errorf("[Validate] preset %d has non-positive size %v", i+1, p)
		}
	}
	if c.FrameDelay < 0 {
		return errors.Errorf("[Validate] frame delay must not be negative, got %v", c.FrameDelay)
	}
	if c.HistorySize < 0 {
		return errors.Errorf("[Validate] history size must not be negative, got %d", c.HistorySize)
	}
	return nil
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid configuration in file: %+v", filename)
	}

	logger.Debugf("loaded configuration from %s", filename)
	return config, nil
}
