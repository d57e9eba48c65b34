package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName      = "pkgview"
	configFile   = "config.toml"
	logFile      = "pkgview.log"
	snapshotFile = "snapshots.db"
)

// location says where one class of files lives on each platform.
// On Linux and Android (Termux) the XDG variable wins, then a directory
// under $HOME.
type location struct {
	xdgEnv     string
	homeRel    string
	windowsEnv string
}

var (
	configLocation = location{xdgEnv: "XDG_CONFIG_HOME", homeRel: ".config", windowsEnv: "APPDATA"}
	dataLocation   = location{xdgEnv: "XDG_DATA_HOME", homeRel: filepath.Join(".local", "share"), windowsEnv: "LOCALAPPDATA"}
)

func (l location) dir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir() //nolint:errcheck
		return filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		return filepath.Join(os.Getenv(l.windowsEnv), appName)
	}

	if xdg := os.Getenv(l.xdgEnv); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir() //nolint:errcheck
	return filepath.Join(home, l.homeRel, appName)
}

// ConfigDir returns the directory holding config.toml.
func ConfigDir() string { return configLocation.dir() }

// DataDir returns the directory holding the log file and snapshot store.
func DataDir() string { return dataLocation.dir() }

// ConfigPath is the default config file read by Load and written by
// "pkgview config init".
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFile)
}

// LogPath is the log file used while the browser owns the terminal and
// log.file is unset.
func LogPath() string {
	return filepath.Join(DataDir(), logFile)
}

// SnapshotPath is the bbolt database behind "pkgview snapshot".
func SnapshotPath() string {
	return filepath.Join(DataDir(), snapshotFile)
}

// EnsureDataDir creates DataDir if needed.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0755)
}
