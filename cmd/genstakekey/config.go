package main

import (
	"github.com/jessevdk/go-flags"
)

type configFlags struct {
	Mnemonic    bool `long:"mnemonic" description:"Generate a fresh mnemonic and derive the key pair from it"`
	Recover     bool `long:"recover" description:"Derive the key pair from an existing mnemonic read from stdin"`
	ShowVersion bool `short:"V" long:"version" description:"Display version information and exit"`
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
