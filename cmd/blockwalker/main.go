// Command blockwalker walks a node's on-disk block files in height order
// and feeds the parsed blocks to a consumer: a thin wiring of the
// chainindex, blkfile, chainstore and chainwalk packages.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/chainwalk/blockwalker/blkfile"
	"github.com/chainwalk/blockwalker/chainindex"
	"github.com/chainwalk/blockwalker/chainstore"
	"github.com/chainwalk/blockwalker/chainwalk"
	"github.com/chainwalk/blockwalker/coin"
	"github.com/chainwalk/blockwalker/script"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("blockwalker", flag.ContinueOnError)
	fs.SetOutput(stderr)

	coinName := fs.String("coin", "bitcoin", "chain to read (see coin.Table)")
	blockchainDir := fs.String("blockchain-dir", "", "block-file directory (defaults to the coin's default folder under $HOME)")
	start := fs.Uint64("start", 0, "first height to walk, inclusive")
	end := fs.Uint64("end", 0, "last height to walk, inclusive (unset means latest)")
	verify := fs.Bool("verify", false, "enable merkle-root and prev-hash verification")
	verboseV := fs.Bool("v", false, "debug verbosity (sets Config.Verbose to 1; no output depends on it)")
	verboseVV := fs.Bool("vv", false, "trace verbosity (sets Config.Verbose to 2; no output depends on it)")
	subcommand := fs.String("subcommand", "stats", "consumer to run: stats")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	hasEnd := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "end" {
			hasEnd = true
		}
	})

	verbose := 0
	if *verboseV {
		verbose = 1
	}
	if *verboseVV {
		verbose = 2
	}

	cfg := Config{
		Coin:          *coinName,
		BlockchainDir: *blockchainDir,
		Start:         *start,
		End:           *end,
		HasEnd:        hasEnd,
		Verify:        *verify,
		Verbose:       verbose,
		Subcommand:    *subcommand,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 1
	}

	params, _ := coin.Lookup(cfg.Coin)
	dataDir := cfg.BlockchainDir
	if dataDir == "" {
		dataDir = DefaultDataDir(params)
	}

	var rng chainindex.Range
	rng.Start = cfg.Start
	if cfg.HasEnd {
		end := cfg.End
		rng.End = &end
	}

	idx, err := chainindex.Open(dataDir, rng)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	files, err := blkfile.Open(dataDir)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	store := chainstore.New(idx, files, chainstore.Config{
		Verify:                  cfg.Verify,
		GenesisHash:             params.GenesisHash,
		AuxPowActivationVersion: params.AuxPowActivationVersion,
		ScriptParams:            scriptParamsFor(params),
	})

	consumer := newStatsConsumer(stdout)

	driverCfg := chainwalk.Config{Start: cfg.Start, ProgressWriter: stderr}
	if cfg.HasEnd {
		driverEnd := cfg.End
		driverCfg.End = &driverEnd
	}

	driver := chainwalk.New(store, consumer, driverCfg)
	if err := driver.Run(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// scriptParamsFor selects the Bitcoin (btcutil/chaincfg) or custom
// (base58check, arbitrary version bytes) evaluation dialect based on the
// coin's address-version byte.
func scriptParamsFor(params coin.Params) script.Params {
	if params.IsBitcoinDialect() {
		cfgParams := &chaincfg.MainNetParams
		if params.AddressVersion == 0x6f {
			cfgParams = &chaincfg.TestNet3Params
		}
		return script.Params{Dialect: script.DialectBitcoin, ChainParams: cfgParams}
	}
	return script.Params{
		Dialect: script.DialectCustom,
		Custom: script.CustomParams{
			P2PKHVersion: params.AddressVersion,
			P2SHVersion:  params.ScriptHashVersion,
		},
	}
}
