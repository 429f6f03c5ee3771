package svgtree

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config is the serialized form of Options, as found in the
// YAML configuration of the command line tool.
type Config struct {
	Width  float32 `yaml:"width"`  // Document width, in pixels.
	Height float32 `yaml:"height"` // Document height, in pixels.
	// Style enables presentation attributes. Defaults to true.
	Style *bool `yaml:"style"`
	// Elements restricts the loaded elements to the given tag names.
	// An empty list loads every element.
	Elements []string `yaml:"elements"`
	// Convert lists the basic shapes converted to paths: "rect", "circle", "ellipse".
	Convert  []string `yaml:"convert"`
	Warnings bool     `yaml:"warnings"` // Trace attribute errors.
}

// LoadConfig decodes a YAML configuration. Unknown fields are rejected.
// An empty input yields the zero Config.
func LoadConfig(r io.Reader) (Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("invalid configuration YAML: %v", err)
	}
	return cfg, nil
}

var convertFlags = map[string]Flags{
	"rect":    ConvertRectToPath,
	"circle":  ConvertCircleToPath,
	"ellipse": ConvertEllipseToPath,
}

// Options returns the builder options described by the configuration.
func (c Config) Options() (Options, error) {
	opts := Options{Width: c.Width, Height: c.Height, ErrorMode: IgnoreErrorMode}
	if c.Warnings {
		opts.ErrorMode = WarnErrorMode
	}
	if len(c.Elements) == 0 {
		opts.Flags = LoadAll &^ LoadStyle
	}
	for _, name := range c.Elements {
		var flag Flags
		if name == "defs" {
			flag = LoadDefs
		} else if flag = elementFlags[name]; flag == 0 {
			return Options{}, fmt.Errorf("unknown element %q in configuration", name)
		}
		opts.Flags |= flag
	}
	if c.Style == nil || *c.Style {
		opts.Flags |= LoadStyle
	}
	for _, shape := range c.Convert {
		flag, ok := convertFlags[shape]
		if !ok {
			return Options{}, fmt.Errorf("unknown shape %q in configuration", shape)
		}
		opts.Flags |= flag
	}
	return opts, nil
}
