package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/tandemnet/tandemd/domain/stakeblock"
	"github.com/tandemnet/tandemd/domain/stakeblock/blockjson"
	"github.com/tandemnet/tandemd/domain/stakeblock/staketx"
	"github.com/tandemnet/tandemd/infrastructure/logger"
	"github.com/tandemnet/tandemd/util/panics"
	"github.com/tandemnet/tandemd/version"
)

var log = logger.RegisterSubSystem("SBDP")

func main() {
	defer panics.HandlePanic(log, nil)

	cfg, err := parseConfig()
	if err != nil {
		printErrorAndExit(errors.Wrap(err, "failed to parse arguments"))
	}

	if cfg.ShowVersion {
		fmt.Printf("stakeblockdump version %s\n", version.Version())
		return
	}

	if cfg.LogFile != "" {
		logLevel, ok := logger.LevelFromString(cfg.LogLevel)
		if !ok {
			printErrorAndExit(errors.Errorf("%q is not a valid log level", cfg.LogLevel))
		}
		err := logger.InitLogFile(cfg.LogFile, logLevel)
		if err != nil {
			printErrorAndExit(errors.Wrap(err, "failed to initialize log file"))
		}
		defer logger.BackendLog().Close()
	}

	blockBytes, err := readBlockBytes(cfg)
	if err != nil {
		printErrorAndExit(err)
	}
	log.Infof("read %d block bytes", len(blockBytes))

	block, err := stakeblock.DeserializeStakeBlock(blockBytes, decodeTransaction)
	if err != nil {
		printErrorAndExit(errors.Wrap(err, "failed to decode block"))
	}
	log.Infof("decoded block %s with %d transactions", block.ID(), len(block.Transactions()))

	jsonBlock, err := blockjson.FromStakeBlock(block)
	if err != nil {
		printErrorAndExit(errors.Wrap(err, "failed to render block"))
	}
	marshaled, err := json.MarshalIndent(jsonBlock, "", "    ")
	if err != nil {
		printErrorAndExit(errors.Wrap(err, "failed to marshal block"))
	}

	fmt.Println(string(marshaled))
	fmt.Printf("\nSignature valid: %t\n", block.SignatureValid())
}

func decodeTransaction(transactionBytes []byte) (stakeblock.Transaction, error) {
	return staketx.DeserializeTransaction(transactionBytes)
}

func readBlockBytes(cfg *configFlags) ([]byte, error) {
	var hexBytes []byte
	var err error
	if cfg.BlockFile != "" {
		hexBytes, err = ioutil.ReadFile(cfg.BlockFile)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", cfg.BlockFile)
		}
	} else {
		hexBytes, err = ioutil.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read stdin")
		}
	}

	blockBytes, err := hex.DecodeString(strings.TrimSpace(string(hexBytes)))
	if err != nil {
		return nil, errors.Wrap(err, "the input is not valid hex")
	}
	return blockBytes, nil
}

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
