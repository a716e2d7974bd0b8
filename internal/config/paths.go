package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "hire"

const (
	configFileName  = "config.json"
	sessionsDirName = "sessions"
)

// Dir returns $XDG_CONFIG_HOME/hire, defaulting to ~/.config/hire.
func Dir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns $XDG_DATA_HOME/hire, defaulting to ~/.local/share/hire.
func DataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// SessionsDir returns the session store root.
func SessionsDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionsDirName), nil
}

// xdgDir resolves an XDG base directory. Relative values are ignored, as
// XDG requires.
func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" && filepath.IsAbs(base) {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", env, err)
	}
	return filepath.Join(home, fallback, AppName), nil
}
