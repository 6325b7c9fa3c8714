package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config keeps the settings that can be given in the config file. Empty
// fields are unset.
type Config struct {
	Mode  string `yaml:"mode" toml:"mode"`
	Angle string `yaml:"angle" toml:"angle"`
	DB    string `yaml:"db" toml:"db"`
	Log   string `yaml:"log" toml:"log"`
}

// Returns the path of the default config file,
// $XDG_CONFIG_HOME/deskcalc/rc.yaml.
func rcPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, "deskcalc", "rc.yaml"), nil
}

// Loads a config file. The format is determined by the extension: .toml
// files are TOML, and everything else is YAML. Unknown keys are errors.
func loadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(string(content), &cfg)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, key := range undecoded {
				keys[i] = key.String()
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("parse %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF, which is fine.
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	logger.Printf("loaded config from %s: %+v", path, cfg)
	return &cfg, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
