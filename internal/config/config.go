package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultPath is the editor preferences file, relative to the process working directory.
const DefaultPath = "config/engine.json"

// EnvPrefix namespaces environment overrides, e.g. COREBELL_SHOW_FPS=true.
const EnvPrefix = "COREBELL"

// Prefs holds editor preferences (debug overlays, grid, AI model, file locations). Persisted across runs.
type Prefs struct {
	ShowFPS       bool   `mapstructure:"show_fps" json:"show_fps"`
	ShowMemAlloc  bool   `mapstructure:"show_memalloc" json:"show_memalloc"`
	GridVisible   bool   `mapstructure:"grid_visible" json:"grid_visible"`
	Physics       bool   `mapstructure:"physics" json:"physics"`
	AIModel       string `mapstructure:"ai_model" json:"ai_model,omitempty"`
	SceneFile     string `mapstructure:"scene_file" json:"scene_file"`
	LogFile       string `mapstructure:"log_file" json:"log_file"`
	LogLevel      string `mapstructure:"log_level" json:"log_level"`
	PrimitivesDir string `mapstructure:"primitives_dir" json:"primitives_dir"`
	Stylesheet    string `mapstructure:"stylesheet" json:"stylesheet"`
	MusicMarket   string `mapstructure:"music_market" json:"music_market"`
	Font          string `mapstructure:"font" json:"font,omitempty"`
}

// Default returns default preferences (debug overlays off, grid and physics on).
func Default() Prefs {
	return Prefs{
		GridVisible:   true,
		Physics:       true,
		AIModel:       "gpt-4o-mini",
		SceneFile:     "scene.json",
		LogFile:       "logs/terminal.txt",
		LogLevel:      "info",
		PrimitivesDir: "assets/primitives",
		Stylesheet:    "assets/ui/editor.css",
		MusicMarket:   "US",
	}
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	def := Default()
	v.SetDefault("show_fps", def.ShowFPS)
	v.SetDefault("show_memalloc", def.ShowMemAlloc)
	v.SetDefault("grid_visible", def.GridVisible)
	v.SetDefault("physics", def.Physics)
	v.SetDefault("ai_model", def.AIModel)
	v.SetDefault("scene_file", def.SceneFile)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("primitives_dir", def.PrimitivesDir)
	v.SetDefault("stylesheet", def.Stylesheet)
	v.SetDefault("music_market", def.MusicMarket)
	v.SetDefault("font", def.Font)
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads preferences from path, layered as defaults < file < COREBELL_* environment.
// A missing file is not an error. An unreadable or invalid file returns the
// defaults (still with environment overrides) and the error.
func Load(path string) (Prefs, error) {
	v := newViper(path)
	var readErr error
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			readErr = fmt.Errorf("config: %s: %w", path, err)
			v = newViper(path)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		readErr = fmt.Errorf("config: %w", err)
	}
	var p Prefs
	if err := v.Unmarshal(&p); err != nil {
		return Default(), fmt.Errorf("config: %w", err)
	}
	return p, readErr
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
