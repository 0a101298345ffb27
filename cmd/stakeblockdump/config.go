package main

import (
	"github.com/jessevdk/go-flags"
)

type configFlags struct {
	BlockFile   string `short:"f" long:"blockfile" description:"Path of a file holding the hex-encoded block. Reads stdin when omitted"`
	LogFile     string `long:"logfile" description:"Write logs to this rotating file"`
	LogLevel    string `short:"d" long:"loglevel" description:"Logging level {trace, debug, info, warn, error, critical}" default:"info"`
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
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
