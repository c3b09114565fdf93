package main

import (
	"os"

	bcf "github.com/logicossoftware/go-bcf"
	"github.com/spf13/cobra"
)

var (
	convertTo  string
	convertOut string
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Re-target a BCF container to another specification version",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := decodeFile(args[0])
		if err := bcf.Convert(p, convertTo); err != nil {
			logger.Fatal().Err(err).Str("to", convertTo).Msg("converting")
		}
		out, err := bcf.EncodeBytes(p)
		if err != nil {
			logger.Fatal().Err(err).Msg("encoding container")
		}
		if err := os.WriteFile(convertOut, out, 0o644); err != nil {
			logger.Fatal().Err(err).Str("file", convertOut).Msg("writing output")
		}
		logger.Info().Str("file", convertOut).Str("version", convertTo).Msg("converted")
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertTo, "to", bcf.Version30, "Target specification version (2.1 or 3.0)")
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "converted.bcf", "Output file")
}
