// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"encoding/binary"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dalzilio/ruddmc"
	"github.com/dalzilio/ruddmc/mcfile"
)

// Config holds the settings shared by all commands. It can be read from a
// YAML file with LoadConfig; flags set on the command line take precedence.
type Config struct {
	Workers     int    `yaml:"workers"`     // fork-join workers, 0 for one per CPU
	Nodesize    int    `yaml:"nodesize"`    // initial size of the node table
	Maxnodesize int    `yaml:"maxnodesize"` // 0 if no limit
	Cachesize   int    `yaml:"cachesize"`
	Cacheratio  int    `yaml:"cacheratio"`
	Order       string `yaml:"order"`  // native, little or big
	Layout      string `yaml:"layout"` // interleaved or split
	MaxLevels   int    `yaml:"maxlevels"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Nodesize:  100000,
		Cachesize: 10000,
		Order:     "native",
		Layout:    mcfile.LayoutInterleaved.String(),
	}
}

// LoadConfig reads the YAML file at path. Fields missing from the file keep
// their default value.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that cannot be checked by the engine.
func (c *Config) Validate() error {
	if _, err := c.byteOrder(); err != nil {
		return err
	}
	if _, err := c.layout(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("negative number of workers (%d)", c.Workers)
	}
	if c.MaxLevels < 0 {
		return fmt.Errorf("negative maximal number of levels (%d)", c.MaxLevels)
	}
	return nil
}

func (c *Config) byteOrder() (binary.ByteOrder, error) {
	switch c.Order {
	case "", "native":
		return binary.NativeEndian, nil
	case "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("invalid byte order %q: must be one of native, little, big", c.Order)
}

func (c *Config) layout() (mcfile.Layout, error) {
	switch c.Layout {
	case "", mcfile.LayoutInterleaved.String():
		return mcfile.LayoutInterleaved, nil
	case mcfile.LayoutSplit.String():
		return mcfile.LayoutSplit, nil
	}
	return 0, fmt.Errorf("invalid layout %q: must be one of interleaved, split", c.Layout)
}

// newEngine returns a BDD configured with c. Variables are added when a model
// is decoded.
func (c *Config) newEngine() (*ruddmc.BDD, error) {
	return ruddmc.New(1,
		ruddmc.Nodesize(c.Nodesize),
		ruddmc.Maxnodesize(c.Maxnodesize),
		ruddmc.Cachesize(c.Cachesize),
		ruddmc.Cacheratio(c.Cacheratio),
	)
}

// decodeOptions returns the options used to read a model from file path.
func (c *Config) decodeOptions() ([]mcfile.Option, error) {
	order, err := c.byteOrder()
	if err != nil {
		return nil, err
	}
	layout, err := c.layout()
	if err != nil {
		return nil, err
	}
	return []mcfile.Option{mcfile.Order(order), mcfile.GroupLayout(layout)}, nil
}
