package main

import (
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// decoderNames lists the variants photometric.New can return.
var decoderNames = []string{
	"rgb-chunky", "rgb-planar", "ycbcr-planar", "black-is-zero", "white-is-zero",
}

type versionInfo struct {
	Version  string   `json:"version"`
	Commit   string   `json:"commit"`
	Built    string   `json:"built"`
	Go       string   `json:"go"`
	Decoders []string `json:"decoders"`
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion()
		},
	})
}

func runVersion() error {
	info := versionInfo{
		Version:  version,
		Commit:   commit,
		Built:    date,
		Go:       runtime.Version(),
		Decoders: decoderNames,
	}
	if jsonOut {
		return printJSON(info)
	}
	printInfo("tiffdec %s\n", info.Version)
	printInfo("  commit: %s\n", info.Commit)
	printInfo("  built: %s\n", info.Built)
	printVerbose("  go: %s\n", info.Go)
	printVerbose("  decoders: %v\n", info.Decoders)
	return nil
}
