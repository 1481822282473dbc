package fcweekly

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultNamePattern matches the weekly build archives FreeCAD publishes.
const DefaultNamePattern = "FreeCAD_weekly-*-Windows-x86_64-py311.7z"

// Config holds the paths and names one update run works with.
type Config struct {
	// DownloadDir is scanned for newly downloaded archives.
	DownloadDir string `yaml:"download_dir,omitempty"`
	// InstallRoot is where versioned installs live side by side.
	InstallRoot string `yaml:"install_root,omitempty"`
	// NamePattern is globbed against archive file names. Install
	// directories follow the same convention minus the extension.
	NamePattern string `yaml:"name_pattern,omitempty"`
	// ShortcutDir is where the launcher shortcut is written.
	ShortcutDir string `yaml:"shortcut_dir,omitempty"`
	// ShortcutName is the shortcut's file name.
	ShortcutName string `yaml:"shortcut_name,omitempty"`
	// ExecutablePath locates the executable inside an install directory,
	// slash-separated.
	ExecutablePath string `yaml:"executable_path,omitempty"`
	// SevenZip is the path to the 7z executable. Discovered when empty.
	SevenZip string `yaml:"seven_zip,omitempty"`
}

// DefaultConfig returns the configuration used when no config file or flags
// say otherwise.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DownloadDir:    filepath.Join(home, "Downloads"),
		InstallRoot:    filepath.Join(home, "Apps", "FreeCAD"),
		NamePattern:    DefaultNamePattern,
		ShortcutDir:    filepath.Join(home, "Desktop"),
		ShortcutName:   "FreeCAD weekly.lnk",
		ExecutablePath: "bin/FreeCAD.exe",
	}
}

// LoadConfig reads a yaml config file and fills unset fields with defaults.
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills empty fields from DefaultConfig.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if c.DownloadDir == "" {
		c.DownloadDir = def.DownloadDir
	}
	if c.InstallRoot == "" {
		c.InstallRoot = def.InstallRoot
	}
	if c.NamePattern == "" {
		c.NamePattern = def.NamePattern
	}
	if c.ShortcutDir == "" {
		c.ShortcutDir = def.ShortcutDir
	}
	if c.ShortcutName == "" {
		c.ShortcutName = def.ShortcutName
	}
	if c.ExecutablePath == "" {
		c.ExecutablePath = def.ExecutablePath
	}
}

// InstallPattern is NamePattern with the archive extension dropped, the
// naming convention for extracted install directories.
func (c *Config) InstallPattern() string {
	return strings.TrimSuffix(c.NamePattern, filepath.Ext(c.NamePattern))
}

// ShortcutPath is where the launcher shortcut is written.
func (c *Config) ShortcutPath() string {
	return filepath.Join(c.ShortcutDir, c.ShortcutName)
}
