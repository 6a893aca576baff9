package layers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Settings is the UI state kept between runs in the settings file.
type Settings struct {
	DebugUI DebugUISettings `toml:"debug_ui"`
}

type DebugUISettings struct {
	Panel [2]float32 `toml:"panel"`
}

func DefaultSettings() Settings {
	return Settings{DebugUI: DebugUISettings{Panel: [2]float32{10, 10}}}
}

// LoadSettings reads path over DefaultSettings. A missing file is not an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("layers: read settings: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("layers: decode settings %s: %w", path, err)
	}
	return s, nil
}

func SaveSettings(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("layers: encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("layers: write settings: %w", err)
	}
	return nil
}
