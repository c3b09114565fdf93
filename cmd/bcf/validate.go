package main

import (
	"fmt"
	"os"

	bcf "github.com/logicossoftware/go-bcf"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check that a BCF container decodes and re-encodes cleanly",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		b, err := os.ReadFile(args[0])
		if err != nil {
			logger.Fatal().Err(err).Msg("reading input")
		}
		p, err := bcf.DecodeBytes(b)
		if err != nil {
			fmt.Printf("INVALID: %v\n", err)
			os.Exit(1)
		}
		if _, err := bcf.EncodeBytes(p); err != nil {
			fmt.Printf("INVALID: decoded but will not re-encode: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("OK: BCF %s, %d topics\n", p.Version, len(p.Markups))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
