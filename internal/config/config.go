package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	appDirName            = "wuttodo"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tasks.db"
	DefaultUser           = "local"
	DefaultRetentionDays  = 7
)

type Keymap struct {
	Quit    string `toml:"quit"`
	Add     string `toml:"add"`
	Edit    string `toml:"edit"`
	Select  string `toml:"select"`
	Batch   string `toml:"batch_complete"`
	Recover string `toml:"recover"`
	Delete  string `toml:"delete"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	NextTab string `toml:"next_tab"`
	PrevTab string `toml:"prev_tab"`
	Confirm string `toml:"confirm"`
	Cancel  string `toml:"cancel"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	User          string `toml:"user"`
	RetentionDays int    `toml:"retention_days"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns the per-user config location, falling back
// to the working directory when no config dir is available.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(filepath.Dir(path), DefaultDBName)
	}
	if cfg.User == "" {
		cfg.User = DefaultUser
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = DefaultRetentionDays
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{
		DBPath:        filepath.Join(dir, DefaultDBName),
		User:          DefaultUser,
		RetentionDays: DefaultRetentionDays,
		Keys: Keymap{
			Quit:    "q",
			Add:     "a",
			Edit:    "e",
			Select:  " ",
			Batch:   "c",
			Recover: "r",
			Delete:  "d",
			Up:      "k",
			Down:    "j",
			NextTab: "tab",
			PrevTab: "shift+tab",
			Confirm: "enter",
			Cancel:  "esc",
		},
	}
}
