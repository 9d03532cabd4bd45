// Package config loads niristick configuration: built-in defaults, an
// optional YAML file, then environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level niristick configuration, shared by the daemon and
// the CLI (which only needs SocketPath).
type Config struct {
	// SocketPath is the unix socket the daemon serves requests on.
	SocketPath string `yaml:"socket_path"`

	// NiriSocket is the Niri IPC socket, normally taken from $NIRI_SOCKET.
	NiriSocket string `yaml:"niri_socket"`

	// NiriBinary is the niri executable used for read queries.
	NiriBinary string `yaml:"niri_binary"`

	// StageWorkspace is the name of the reserved workspace staged windows
	// are parked on.
	StageWorkspace string `yaml:"stage_workspace"`

	// CommandTimeout bounds every compositor query and move.
	CommandTimeout Duration `yaml:"command_timeout"`
}

// Duration accepts Go duration notation ("5s", "1m30s") in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in configuration with environment overrides
// applied.
func Default() Config {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = os.TempDir()
	}
	cfg := Config{
		SocketPath:     filepath.Join(runtimeDir, "niristick.sock"),
		NiriSocket:     os.Getenv("NIRI_SOCKET"),
		NiriBinary:     "niri",
		StageWorkspace: "stage",
		CommandTimeout: Duration(5 * time.Second),
	}
	cfg.applyEnv()
	return cfg
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "niristick", "config.yml")
}

// Load reads the YAML file at path over the defaults. An empty path means
// the conventional location; a missing file there is not an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyEnv()

	if cfg.CommandTimeout <= 0 {
		return Config{}, fmt.Errorf("config %s: command_timeout must be positive", path)
	}
	if cfg.StageWorkspace == "" {
		return Config{}, fmt.Errorf("config %s: stage_workspace must not be empty", path)
	}
	return cfg, nil
}

// applyEnv applies environment overrides. NIRISTICK_SOCKET wins over both
// the default and the config file so a CLI invocation can target a
// non-standard daemon.
func (c *Config) applyEnv() {
	if socket := os.Getenv("NIRISTICK_SOCKET"); socket != "" {
		c.SocketPath = socket
	}
	if socket := os.Getenv("NIRI_SOCKET"); socket != "" {
		c.NiriSocket = socket
	}
}
