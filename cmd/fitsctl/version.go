package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fitskit/fits/printer"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fitsctl %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
	},
}

func init() {
	printer.Version = version
	rootCmd.AddCommand(versionCmd)
}
