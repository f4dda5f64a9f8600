// Package config reads the rc file of the inspector.
//
// The rc file is a YAML document. All keys are optional:
//
//	width: 100        # width of the member grid; 0 uses the terminal width
//	padding: 2        # spaces between columns of the member grid
//	color: false      # force styled output on or off
//	dump: true        # show a deep dump of the current value
//	doc: false        # hide documentation
//	prompt: "> "      # prompt of the interactive loop
//	styles:
//	  current: inverse
//	  index: dim
//	  heading: bold fg-blue
//
// Styles use the syntax of ui.ParseStyling.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"src.insp.sh/pkg/logutil"
	"src.insp.sh/pkg/ui"
)

var logger = logutil.GetLogger("[config] ")

// DefaultWidth is the width used when the output is not a terminal and no
// width is configured.
const DefaultWidth = 80

// Config keeps the settings of the interactive loop and the renderer.
type Config struct {
	Width   int    `yaml:"width"`
	Padding int    `yaml:"padding"`
	Color   *bool  `yaml:"color"`
	Dump    bool   `yaml:"dump"`
	Doc     *bool  `yaml:"doc"`
	Prompt  string `yaml:"prompt"`
	Styles  Styles `yaml:"styles"`
}

// Styles keeps the stylings of the parts of the output.
type Styles struct {
	Current string `yaml:"current"`
	Index   string `yaml:"index"`
	Heading string `yaml:"heading"`
}

// Default returns the configuration used when there is no rc file.
func Default() *Config {
	return &Config{
		Padding: 1,
		Prompt:  "Apply: ",
		Styles: Styles{
			Current: "inverse",
			Index:   "dim",
			Heading: "bold",
		},
	}
}

// DefaultPath returns the default location of the rc file,
// $XDG_CONFIG_HOME/insp/rc.yaml or its platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "insp", "rc.yaml"), nil
}

// Load reads the rc file at path on top of the default configuration. A
// missing file is not an error. Unknown keys and invalid values are.
func Load(path string) (*Config, error) {
	cfg := Default()
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Printf("no rc file at %s", path)
			return cfg, nil
		}
		return nil, err
	}
	defer file.Close()
	err = cfg.decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Printf("loaded rc file %s", path)
	return cfg, nil
}

// Parse is like Load, but reads the YAML document from a string.
func Parse(text string) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(strings.NewReader(text)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(cfg)
	if err != nil && err != io.EOF {
		return err
	}
	return cfg.Validate()
}

// Validate checks the values of cfg.
func (cfg *Config) Validate() error {
	if cfg.Width < 0 {
		return fmt.Errorf("width must be non-negative, but is %d", cfg.Width)
	}
	if cfg.Padding < 0 {
		return fmt.Errorf("padding must be non-negative, but is %d", cfg.Padding)
	}
	for _, s := range []struct{ name, value string }{
		{"current", cfg.Styles.Current},
		{"index", cfg.Styles.Index},
		{"heading", cfg.Styles.Heading},
	} {
		if s.value != "" && ui.ParseStyling(s.value) == nil {
			return fmt.Errorf("styles.%s: invalid styling %q", s.name, s.value)
		}
	}
	return nil
}

// ShowDoc reports whether documentation should be shown.
func (cfg *Config) ShowDoc() bool { return cfg.Doc == nil || *cfg.Doc }

// UseColor reports whether output should be styled, given whether it goes to
// a terminal.
func (cfg *Config) UseColor(isTTY bool) bool {
	if cfg.Color != nil {
		return *cfg.Color
	}
	return isTTY
}

// GridWidth returns the configured width, or termWidth if it is not set. If
// neither is positive, it returns DefaultWidth.
func (cfg *Config) GridWidth(termWidth int) int {
	switch {
	case cfg.Width > 0:
		return cfg.Width
	case termWidth > 0:
		return termWidth
	default:
		return DefaultWidth
	}
}
