// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"grana/internal/model"
)

// Profile is the user-configured side of the engine: everything the derived
// metrics need beyond the transactions themselves.
type Profile struct {
	Goals           map[model.Category]float64
	Salary          float64
	StartingBalance float64
}

// ProfileFromViper reads the profile section of the loaded configuration.
func ProfileFromViper() Profile {
	p := Profile{
		Salary:          viper.GetFloat64("profile.salary"),
		StartingBalance: viper.GetFloat64("profile.starting_balance"),
		Goals:           make(map[model.Category]float64),
	}
	for name, amount := range viper.GetStringMap("profile.goals") {
		if v, ok := toFloat(amount); ok {
			p.Goals[model.Category(strings.ToUpper(name))] = v
		}
	}
	return p
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// DefaultDatabasePath returns the standard location of the SQLite database.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "grana.db"
	}
	return filepath.Join(home, ".local", "share", "grana", "grana.db")
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
