// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"github.com/dalzilio/ruddmc"
	"github.com/dalzilio/ruddmc/mcfile"
)

// loadModel creates a BDD with the settings of cfg and decodes the model
// stored in path. The caller should Release the system when done.
func loadModel(cfg *Config, path string) (*ruddmc.BDD, *mcfile.System, error) {
	bdd, err := cfg.newEngine()
	if err != nil {
		return nil, nil, err
	}
	opts, err := cfg.decodeOptions()
	if err != nil {
		return nil, nil, err
	}
	sys, err := mcfile.ReadFile(path, bdd, opts...)
	if err != nil {
		return nil, nil, err
	}
	return bdd, sys, nil
}
