package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-sif/brc"
	"github.com/go-sif/brc/datasource/file"
	"github.com/go-sif/brc/datasource/memory"
	"github.com/go-sif/brc/driver"
	"github.com/go-sif/brc/format"
	"github.com/go-sif/brc/internal/snapshot"
	"github.com/go-sif/brc/internal/stats"
)

func newRunCommand(s *streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Aggregate a measurement file, or standard input if the file is -",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := configure(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(s, v)
			if err != nil {
				return err
			}
			return runAggregate(cmd, s, v, logger, args[0])
		},
	}
	flags := cmd.Flags()
	flags.Int("workers", 0, "number of Ranges scanned in parallel (default: number of CPUs)")
	flags.Int("key-hint", brc.DefaultKeyHint, "expected number of distinct names")
	flags.Int("split-threshold", brc.DefaultSplitThreshold, "inputs smaller than this many bytes are not split")
	flags.Bool("strict", false, "fail on malformed records instead of skipping them")
	addOutputFlags(cmd)
	flags.String("metrics-file", "", "write Prometheus metrics for the run to this file")
	return cmd
}

// addOutputFlags adds the flags shared by every command which produces a report
func addOutputFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("format", "text", "output format: text, json or lines")
	flags.StringP("output", "o", "", "write the report to this file instead of standard output")
	flags.String("snapshot", "", "also write the merged table to this snapshot file")
	flags.String("codec", "lz4", "snapshot compression: none, lz4 or zstd")
	flags.String("expect", "", "verify the result against this JSON file")
}

func openSource(s *streams, path string) (brc.Source, error) {
	if path == "-" {
		return memory.ReadAll("stdin", s.in)
	}
	return file.Open(path)
}

func runAggregate(cmd *cobra.Command, s *streams, v *viper.Viper, logger log.Logger, path string) error {
	opts := &brc.Options{
		NumWorkers:     v.GetInt("workers"),
		KeyHint:        v.GetInt("key-hint"),
		SplitThreshold: v.GetInt("split-threshold"),
		Policy:         brc.SkipMalformed,
	}
	if v.GetBool("strict") {
		opts.Policy = brc.FailMalformed
	}
	var reg *prometheus.Registry
	var metrics *driver.Metrics
	if v.GetString("metrics-file") != "" {
		reg = prometheus.NewRegistry()
		metrics = stats.NewMetrics(reg)
	}

	src, err := openSource(s, path)
	if err != nil {
		return err
	}
	defer src.Close()
	res, err := driver.Run(cmd.Context(), src, opts, logger, metrics)
	if err != nil {
		return err
	}
	// the merged table borrows the source, so snapshot before it is closed
	if err := writeSnapshot(v, res); err != nil {
		return err
	}
	if err := report(s, v, res.Records); err != nil {
		return err
	}
	if reg != nil {
		if err := prometheus.WriteToTextfile(v.GetString("metrics-file"), reg); err != nil {
			return err
		}
	}
	level.Info(logger).Log("msg", driver.Describe(res.Stats))
	return nil
}

func writeSnapshot(v *viper.Viper, res *driver.Result) error {
	path := v.GetString("snapshot")
	if path == "" {
		return nil
	}
	codec, err := snapshot.ParseCodec(v.GetString("codec"))
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		return snapshot.Write(w, res.Table, codec, res.RunID)
	})
}

// writeFile creates path and fills it with fn, reporting any error from closing it
func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// report renders records to the configured output, then verifies them if asked
func report(s *streams, v *viper.Viper, records []brc.Record) error {
	write, err := format.Lookup(v.GetString("format"))
	if err != nil {
		return err
	}
	if path := v.GetString("output"); path != "" {
		err = writeFile(path, func(w io.Writer) error { return write(w, records) })
	} else {
		err = write(s.out, records)
	}
	if err != nil {
		return err
	}
	if path := v.GetString("expect"); path != "" {
		expected, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := format.Verify(bytes.TrimSpace(expected), records); err != nil {
			return fmt.Errorf("result does not match %s: %w", path, err)
		}
	}
	return nil
}
