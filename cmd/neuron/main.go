package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
	subtle = color.New(color.FgHiBlack)
	brand  = color.New(color.FgHiCyan, color.Bold)
)

var rootCmd = &cobra.Command{
	Use:           "neuron",
	Short:         "Headless tools for the neuron scene engine",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		bad.Fprintf(os.Stderr, "neuron: %v\n", err)
		os.Exit(1)
	}
}
