// Package config loads kbdl.toml, the optional project file of a keyboard description.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/kbdl/kbdl/keymap"
	"github.com/kbdl/kbdl/suggest"
)

// FileName is the name Find looks for.
const FileName = "kbdl.toml"

type Config struct {
	LogLevel string `toml:"log_level"`
	Output   Output `toml:"output"`
	// Options holds option defaults per backend name. Values may be strings, integers or booleans.
	Options map[string]map[string]any `toml:"options"`

	// Path is the file the config was loaded from. It is empty for the default config.
	Path string `toml:"-"`
	// Undecoded lists the keys of the file that mean nothing to kbdl.
	Undecoded []string `toml:"-"`
}

type Output struct {
	Firmware string `toml:"firmware"`
	Diagram  string `toml:"diagram"`
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
	}
}

// Load reads a config file. Output paths are made relative to the directory of the file.
func Load(path string) (*Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %v: %w", path, err)
	}
	c.Path = path
	for _, k := range md.Undecoded() {
		c.Undecoded = append(c.Undecoded, k.String())
	}

	dir := filepath.Dir(path)
	c.Output.Firmware = resolvePath(dir, c.Output.Firmware)
	c.Output.Diagram = resolvePath(dir, c.Output.Diagram)

	if _, err := c.DefaultOptions(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", path, err)
	}

	return c, nil
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Find looks for a config file in dir and its parents.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		p := filepath.Join(dir, FileName)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// LoadFor loads the config file that applies to a description in dir. A missing file yields the
// default config.
func LoadFor(dir string) (*Config, error) {
	p, ok := Find(dir)
	if !ok {
		return Default(), nil
	}
	return Load(p)
}

var errUnknownBackend = errors.New("unknown backend")

// DefaultOptions converts the [options.<backend>] tables for keymap.WithDefaultOptions.
func (c *Config) DefaultOptions() (map[keymap.Backend]map[string]string, error) {
	names := make([]string, 0, len(c.Options))
	for name := range c.Options {
		names = append(names, name)
	}
	sort.Strings(names)

	defaults := map[keymap.Backend]map[string]string{}
	for _, name := range names {
		b, ok := keymap.ParseBackend(name)
		if !ok {
			err := fmt.Errorf("%w: options.%v", errUnknownBackend, name)
			if s := suggest.DidYouMean(name, keymap.BackendNames()); len(s) > 0 {
				err = fmt.Errorf("%w (did you mean %v?)", err, s[0])
			}
			return nil, err
		}
		opts := map[string]string{}
		for k, v := range c.Options[name] {
			opts[k] = fmt.Sprint(v)
		}
		defaults[b] = opts
	}
	return defaults, nil
}
