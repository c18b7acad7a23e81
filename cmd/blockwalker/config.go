package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chainwalk/blockwalker/coin"
)

// Config is the CLI's plain-struct configuration, built from flags in
// run() and validated before anything opens a file.
type Config struct {
	Coin          string
	BlockchainDir string
	Start         uint64
	End           uint64
	HasEnd        bool
	Verify        bool
	Verbose       int
	Subcommand    string
}

// DefaultDataDir consults the user's home directory to compute where a
// coin's block files live when --blockchain-dir is not given.
func DefaultDataDir(params coin.Params) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return params.DefaultFolder
	}
	return filepath.Join(home, params.DefaultFolder)
}

// Validate checks the parts of Config the CLI itself is responsible
// for, so the packages below never see an invalid range or an unknown
// coin name.
func (c Config) Validate() error {
	if c.HasEnd && !(c.Start < c.End) {
		return errors.New("--start must be less than --end")
	}
	if _, ok := coin.Lookup(c.Coin); !ok {
		return fmt.Errorf("unknown coin %q", c.Coin)
	}
	switch c.Subcommand {
	case "stats", "":
	default:
		return fmt.Errorf("unknown subcommand %q", c.Subcommand)
	}
	return nil
}
