package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/go-sif/brc/internal/gen"
)

func newGenerateCommand(s *streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Write a synthetic measurement file, or to standard output if the file is -",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := configure(cmd)
			if err != nil {
				return err
			}
			cfg := gen.Config{
				Rows:     v.GetInt("rows"),
				Stations: v.GetInt("stations"),
				Seed:     v.GetInt64("seed"),
			}
			if args[0] == "-" {
				return gen.Write(s.out, cfg)
			}
			return writeFile(args[0], func(w io.Writer) error { return gen.Write(w, cfg) })
		},
	}
	flags := cmd.Flags()
	flags.Int("rows", 1_000_000, "number of records to write")
	flags.Int("stations", 400, "number of distinct names")
	flags.Int64("seed", 1, "seed for the pseudo-random stream")
	return cmd
}
