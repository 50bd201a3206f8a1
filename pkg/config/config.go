package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"geotask/pkg/keymaps"
)

// Config holds the application configuration
type Config struct {
	// StoreDir is the directory for the task database.
	StoreDir string `json:"store_dir"`

	// LocationFeed is the file the platform location bridge keeps up to
	// date with the latest fix. Empty disables location support.
	LocationFeed string `json:"location_feed"`

	KeyMap     map[string]string `json:"keymap"`
	StylesFile string            `json:"styles_file"`
}

// Styles holds the application colors and styling information
type Styles struct {
	// UI element colors
	BorderColor string `json:"border_color"`
	AccentColor string `json:"accent_color"`

	// Text colors
	NormalTextColor   string `json:"normal_text_color"`
	SelectedTextColor string `json:"selected_text_color"`
	SelectedBgColor   string `json:"selected_bg_color"`
	ErrorColor        string `json:"error_color"`

	// Task attribute colors
	LocationColor string `json:"location_color"`
	DueDateColor  string `json:"due_date_color"`
}

// Load loads the application configuration from the specified path,
// writing a default config on first run.
func Load(configPath string) (Config, Styles, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, Styles{}, err
	}

	configDir := filepath.Join(homeDir, ".config", "geotask")
	defaultConfigPath := filepath.Join(configDir, "config.json")

	config := Config{
		StoreDir:     filepath.Join(configDir, "tasks.db"),
		LocationFeed: filepath.Join(configDir, "location.json"),
		KeyMap:       keymaps.GetDefaultKeyMappings(),
		StylesFile:   filepath.Join(configDir, "styles.json"),
	}

	if configPath == "" {
		configPath = defaultConfigPath
	}

	configData, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return config, Styles{}, err
			}

			configData, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return config, Styles{}, err
			}

			if err := os.WriteFile(configPath, configData, 0644); err != nil {
				return config, Styles{}, err
			}
		} else {
			return config, Styles{}, err
		}
	} else {
		if err := json.Unmarshal(configData, &config); err != nil {
			return config, Styles{}, err
		}
	}

	styles, err := loadStyles(config.StylesFile)
	if err != nil {
		return config, styles, fmt.Errorf("error loading styles: %w", err)
	}

	return config, styles, nil
}

// loadStyles loads the application styles from the specified path
func loadStyles(stylesPath string) (Styles, error) {
	defaultStyles := Styles{
		BorderColor:       "240",
		AccentColor:       "205",
		NormalTextColor:   "86",
		SelectedTextColor: "229",
		SelectedBgColor:   "57",
		ErrorColor:        "9",
		LocationColor:     "4",
		DueDateColor:      "2",
	}

	stylesData, err := os.ReadFile(stylesPath)
	if err != nil {
		if os.IsNotExist(err) {
			stylesDir := filepath.Dir(stylesPath)
			if err := os.MkdirAll(stylesDir, 0755); err != nil {
				return defaultStyles, err
			}

			stylesData, err = json.MarshalIndent(defaultStyles, "", "  ")
			if err != nil {
				return defaultStyles, err
			}

			if err := os.WriteFile(stylesPath, stylesData, 0644); err != nil {
				return defaultStyles, err
			}

			return defaultStyles, nil
		}
		return defaultStyles, err
	}

	var loadedStyles Styles
	if err := json.Unmarshal(stylesData, &loadedStyles); err != nil {
		return defaultStyles, err
	}

	return loadedStyles, nil
}
