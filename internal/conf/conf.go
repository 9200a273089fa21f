package conf

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

var (
	Path string       // Config path
	mu   sync.RWMutex // Protects access to Conf
	Conf = Default()
)

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Overlay: Overlay{
			FontSize: 16,
			FontFace: "Segoe UI",
			X:        8,
			Y:        8,
			Width:    520,
		},
		Hotkey: Hotkey{
			Key: "F10",
		},
		Mirror: Mirror{
			Listen: ":8080",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// LoadConfig Set Path and load config into memory. A missing file is
// created empty and the defaults stay in effect.
// Run this at start
func LoadConfig(path string) error {
	Path = path
	err := Update()
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		f, createErr := os.OpenFile(path, os.O_CREATE, 0644)
		if createErr != nil {
			return fmt.Errorf("failed to create config file %s: %w", path, createErr)
		}
		f.Close()
		return nil
	}
	return fmt.Errorf("failed to load config: %w", err)
}

// Update reads the config file and loads it into the global Conf variable
func Update() (err error) {
	mu.Lock()
	defer mu.Unlock()

	if _, err = os.Stat(Path); err != nil {
		return err
	}
	loaded := Default()
	if _, err = toml.DecodeFile(Path, &loaded); err != nil {
		return fmt.Errorf("failed to update global config %w", err)
	}
	Conf = loaded
	return nil
}

// Write saves the provided config to the TOML file at the global Path
func Write(conf Config) (err error) {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.Create(Path)
	if err != nil {
		return fmt.Errorf("failed to create config file %w", err)
	}
	defer f.Close()
	err = toml.NewEncoder(f).Encode(conf)
	if err != nil {
		return fmt.Errorf("failed to write config file %w", err)
	}

	// Update global config after successful write
	Conf = conf
	return nil
}

// Read returns a copy of the current configuration
func Read() Config {
	mu.RLock()
	defer mu.RUnlock()

	conf := Conf
	conf.Hotkey.Modifiers = append([]string(nil), Conf.Hotkey.Modifiers...)
	conf.Auth.Users = copyUsers()
	return conf
}

// copyUsers copies the users map; callers hold mu
func copyUsers() map[string]string {
	users := make(map[string]string, len(Conf.Auth.Users))
	for k, v := range Conf.Auth.Users {
		users[k] = v
	}
	return users
}

// GetUsers returns a copy of the users map in a thread-safe manner
func GetUsers() map[string]string {
	mu.RLock()
	defer mu.RUnlock()
	return copyUsers()
}

// GetOverlay returns the Overlay config in a thread-safe manner
func GetOverlay() Overlay {
	mu.RLock()
	defer mu.RUnlock()
	return Conf.Overlay
}

// GetHotkey returns the Hotkey config in a thread-safe manner
func GetHotkey() Hotkey {
	mu.RLock()
	defer mu.RUnlock()
	return Hotkey{
		Key:       Conf.Hotkey.Key,
		Modifiers: append([]string(nil), Conf.Hotkey.Modifiers...),
	}
}

// GetMirror returns the Mirror config in a thread-safe manner
func GetMirror() Mirror {
	mu.RLock()
	defer mu.RUnlock()
	return Conf.Mirror
}

// GetLogLevel parses Log.Level, falling back to info
func GetLogLevel() slog.Level {
	mu.RLock()
	defer mu.RUnlock()

	switch strings.ToLower(Conf.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
