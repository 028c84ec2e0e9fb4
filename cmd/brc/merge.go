package main

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gofrs/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-sif/brc/driver"
	"github.com/go-sif/brc/internal/snapshot"
	"github.com/go-sif/brc/internal/table"
)

func newMergeCommand(s *streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <snapshot>...",
		Short: "Fold snapshots written by run --snapshot into a single report",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := configure(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(s, v)
			if err != nil {
				return err
			}
			return mergeSnapshots(s, v, logger, args)
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func readSnapshot(path string) (*table.Table, snapshot.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, snapshot.Header{}, err
	}
	defer f.Close()
	return snapshot.Read(f)
}

func mergeSnapshots(s *streams, v *viper.Viper, logger log.Logger, paths []string) error {
	var merged *table.Table
	for _, path := range paths {
		t, header, err := readSnapshot(path)
		if err != nil {
			return err
		}
		level.Debug(logger).Log("msg", "read snapshot", "path", path, "run", header.RunID, "codec", header.Codec, "entries", header.Entries)
		if merged == nil {
			merged = t
		} else {
			merged.Merge(t)
		}
	}
	runID, err := uuid.NewV4()
	if err != nil {
		return err
	}
	if err := writeSnapshot(v, &driver.Result{RunID: runID, Table: merged}); err != nil {
		return err
	}
	records := table.Finalize(merged)
	level.Info(logger).Log("msg", "merged snapshots", "snapshots", len(paths), "keys", len(records))
	return report(s, v, records)
}
