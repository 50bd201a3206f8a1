package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"geotask/pkg/cli"
	"geotask/pkg/config"
	"geotask/pkg/geoloc"
	"geotask/pkg/logging"
	"geotask/pkg/store"
	"geotask/pkg/ui"
)

func main() {
	args := cli.ParseArgs()

	if err := logging.Init(args.Verbose); err != nil {
		fmt.Printf("Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()

	cfg, styles, err := loadConfig(args.ConfigPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	s, err := store.Open(store.Config{
		Dir:        cfg.StoreDir,
		SyncWrites: true,
		Logger:     logging.L(),
	})
	if err != nil {
		fmt.Printf("Error opening task store: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	// Read any persisted collection. Fails soft: a missing or
	// unreadable payload just means starting empty.
	s.Load()

	// One-shot CLI commands skip the TUI entirely
	if cli.HandleCommands(s, args) {
		return
	}

	// Location support is advisory: a failure here never blocks tasks
	var geo *geoloc.Provider
	if cfg.LocationFeed != "" {
		geo = geoloc.New(cfg.LocationFeed, logging.L())
		geo.SubscribeAuth(func(state geoloc.AuthState) {
			if state == geoloc.Authorized {
				if err := geo.StartUpdating(); err != nil {
					logging.L().Warn("start location updates failed", "error", err)
				}
			}
		})
		geo.RequestPermission()
		defer geo.StopUpdating()
	}

	p := tea.NewProgram(ui.NewModel(s, geo, cfg, styles), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig seeds a default config file through viper on first run,
// then hands the file to the config package.
func loadConfig(configPath string) (config.Config, config.Styles, error) {
	configDir := filepath.Join(os.Getenv("HOME"), ".config", "geotask")

	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath == "" {
			return config.Config{}, config.Styles{}, err
		}
		// Config file not found, seed the defaults
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return config.Config{}, config.Styles{}, err
		}
		viper.Set("store_dir", filepath.Join(configDir, "tasks.db"))
		viper.Set("location_feed", filepath.Join(configDir, "location.json"))
		viper.Set("styles_file", filepath.Join(configDir, "styles.json"))
		if err := viper.SafeWriteConfigAs(filepath.Join(configDir, "config.json")); err != nil {
			if _, ok := err.(viper.ConfigFileAlreadyExistsError); !ok {
				return config.Config{}, config.Styles{}, err
			}
		}
	}

	return config.Load(configPath)
}
